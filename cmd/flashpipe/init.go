package flashpipecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizwire/flashpipe/pkg/config"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.toml with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = "config.toml"
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	return cmd
}
