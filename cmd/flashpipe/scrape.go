package flashpipecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizwire/flashpipe/pkg/results"
	"github.com/quizwire/flashpipe/pkg/scrape"
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fill article bodies from their links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			store := results.NewStore(cfg.Results.Path, log)
			articles, err := store.Load()
			if err != nil {
				return err
			}

			scraper := scrape.New(log)
			updated := scraper.FillBodies(cmd.Context(), articles)

			if err := store.Save(articles); err != nil {
				return err
			}

			fmt.Printf("Scraped %d of %d articles\n", updated, len(articles))

			return nil
		},
	}

	return cmd
}
