package flashpipecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizwire/flashpipe/pkg/results"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <topic>",
		Short: "Fetch, dedupe and rank articles for a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			pipeline, cleanup, err := newPipeline(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			ranked, err := pipeline.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			store := results.NewStore(cfg.Results.Path, log)
			if err := store.Save(ranked); err != nil {
				return err
			}

			for _, a := range ranked {
				fmt.Printf("[%s] (Score: %.2f) %s\n", a.Source, a.Score, a.Title)
				fmt.Printf("Link: %s\n", a.Link)
				fmt.Println("--------------------------------------------------------------------------------")
			}
			fmt.Printf("Saved %d articles to %s\n", len(ranked), store.Path())

			return nil
		},
	}

	return cmd
}
