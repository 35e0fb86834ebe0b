package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mstdn-rss2bsky-post",
	Short: "mstdn-rss2bsky-post mirrors a Mastodon RSS feed to a Bluesky account",
	Long:  "mstdn-rss2bsky-post polls a Mastodon account's RSS feed and reposts entries that have not been mirrored to Bluesky yet",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setupLogger(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mstdn-rss2bsky-post: run 'mstdn-rss2bsky-post --help' to see available commands")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.CountP("debug", "d", "Increase log verbosity (repeatable)")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("config", "", "Path to an optional YAML config file")
	pf.String("xrpc-host", envOr("XRPC_HOST", config.DefaultXrpcHost), "XRPC host of the Bluesky PDS (env XRPC_HOST)")
	pf.Bool("dry-run", false, "Do not touch the network or the ledger")
	pf.String("db-path", "", "Path to the posted-links ledger database (default: under the data dir)")
	pf.String("lock-path", "", "Path to the run lock file (default: under the data dir)")
	pf.Int("min-save-posts", config.DefaultMinSavePosts, "Ledger entries kept when pruning after a run")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupLogger installs the global slog logger. Logs go to stderr; stdout is
// reserved for per-item result lines.
func setupLogger(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetCount("debug")
	format, _ := cmd.Flags().GetString("log-format")

	level := slog.LevelInfo
	if debug > 0 {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}
