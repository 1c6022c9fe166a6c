package flashpipecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizwire/flashpipe/pkg/results"
	"github.com/quizwire/flashpipe/pkg/scrape"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <topic>",
		Short: "Run the full pipeline: search, scrape, generate",
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

			scraper := scrape.New(log)
			scraper.FillBodies(cmd.Context(), ranked)
			if err := store.Save(ranked); err != nil {
				return err
			}

			orch, err := newOrchestrator(cfg, store, log)
			if err != nil {
				return err
			}

			result, err := orch.Run(cmd.Context(), ranked)
			if result != nil {
				fmt.Println(result.Summary())
			}

			return err
		},
	}

	return cmd
}
