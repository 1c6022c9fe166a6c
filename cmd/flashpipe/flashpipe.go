// Package flashpipecmder
package flashpipecmder

import (
	"github.com/spf13/cobra"
)

const flashpipeLongDesc string = `Flashpipe turns a news topic into study flashcards.

Run the phases individually:
  flashpipe search <topic>   Fetch, dedupe and rank articles
  flashpipe scrape           Fill article bodies from their links
  flashpipe generate         Generate a flashcard per article

or all at once:
  flashpipe run <topic>`

const flashpipeShortDesc string = "Flashpipe - news to flashcards"

func NewFlashpipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flashpipe",
		Short: flashpipeShortDesc,
		Long:  flashpipeLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config.toml")

	// Add subcommands
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}
