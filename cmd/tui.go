package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fedibridge/mstdn-rss2bsky-post/cmd/tui/ui"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/store"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse mirror history in an interactive terminal UI",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		dbConn, err := store.Open(s.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		entries, err := store.NewLedger(dbConn).Recent(500)
		if err != nil {
			return err
		}

		p := ui.NewProgram(entries)
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
