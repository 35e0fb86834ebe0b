package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/store"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Trim the ledger to its newest entries",
	Long:  "Trim the ledger to its newest entries. Pruned links can be posted again if they reappear in the feed.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		if s.DryRun {
			fmt.Printf("Dry run: would prune ledger to %d entries.\n", keep)
			return nil
		}

		dbConn, err := store.Open(s.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		removed, err := store.NewLedger(dbConn).Prune(keep)
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d entries, kept the newest %d\n", removed, keep)
		return nil
	},
}

func init() {
	pruneCmd.Flags().Int("keep", 50, "Number of newest entries to keep")
	rootCmd.AddCommand(pruneCmd)
}
