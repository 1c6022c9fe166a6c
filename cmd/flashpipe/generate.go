package flashpipecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizwire/flashpipe/pkg/results"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a flashcard per article",
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

			orch, err := newOrchestrator(cfg, store, log)
			if err != nil {
				return err
			}

			result, err := orch.Run(cmd.Context(), articles)
			if result != nil {
				fmt.Println(result.Summary())
			}

			return err
		},
	}

	return cmd
}
