package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ledger and lock file state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("mstdn-rss2bsky-post status:\n")
		if _, err := os.Stat(s.DBPath); err != nil {
			fmt.Printf("- Ledger: not found (expected: %s)\n", s.DBPath)
		} else {
			dbConn, err := store.Open(s.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = dbConn.Close() }()
			n, err := store.NewLedger(dbConn).Count()
			if err != nil {
				return err
			}
			fmt.Printf("- Ledger: %s (%d entries)\n", s.DBPath, n)
		}

		if data, err := os.ReadFile(s.LockPath); err != nil {
			fmt.Printf("- Lock file: not found (expected: %s)\n", s.LockPath)
		} else {
			fmt.Printf("- Lock file: %s (last run: %s)\n", s.LockPath, strings.TrimSpace(string(data)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
