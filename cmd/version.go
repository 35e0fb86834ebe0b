package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mstdn-rss2bsky-post %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
