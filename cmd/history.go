package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently mirrored posts",
	Long:  "Show recently mirrored posts (when, original link, Bluesky record URI), newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		dbConn, err := store.Open(s.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		entries, err := store.NewLedger(dbConn).Recent(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no mirrored posts yet")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\t%s\n", e.PostedAt, e.Link, e.URI)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
