package cmd

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/gofeed"
	"github.com/spf13/cobra"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/bsky"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/config"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/feed"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/lockfile"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/poster"
	"github.com/fedibridge/mstdn-rss2bsky-post/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch the feed and mirror unseen entries to Bluesky",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		if s.FeedURL == "" {
			return fmt.Errorf("--feed-url is required (flag or config file)")
		}
		identifier := flagOrEnv(cmd, "atproto-identifier", "ATPROTO_IDENTIFIER")
		password := flagOrEnv(cmd, "atproto-password", "ATPROTO_PASSWORD")
		if !s.DryRun {
			if identifier == "" {
				return fmt.Errorf("--atproto-identifier is required (flag or env ATPROTO_IDENTIFIER)")
			}
			if password == "" {
				return fmt.Errorf("--atproto-password is required (flag or env ATPROTO_PASSWORD)")
			}
		}

		ctx := cmd.Context()

		var items []*gofeed.Item
		if s.DryRun {
			fmt.Println("Dry run: skip fetching feed items.")
		} else {
			items, err = feed.NewFetcher(nil).Fetch(ctx, s.FeedURL)
			if err != nil {
				return err
			}
			slog.Debug("fetched feed", "url", s.FeedURL, "items", len(items))
		}

		client := bsky.New(s.XrpcHost, nil, s.DryRun)
		if s.DryRun {
			fmt.Printf("Dry run: authenticate by %s\n", identifier)
		} else {
			sess, err := client.CreateSession(ctx, identifier, password)
			if err != nil {
				return err
			}
			client.SetSession(sess.AccessJwt, sess.DID)
			slog.Debug("authenticated", "handle", sess.Handle, "did", sess.DID)
		}

		if s.DryRun {
			fmt.Println("Dry run: create ledger if not exists.")
			fmt.Println("Dry run: lock and post items.")
			return nil
		}

		dbConn, err := store.Open(s.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		ledger := store.NewLedger(dbConn)

		lock, err := lockfile.Acquire(s.LockPath)
		if err != nil {
			return err
		}
		defer func() { _ = lock.Release() }()

		p := &poster.Poster{
			Client:             client,
			Ledger:             ledger,
			FeedURL:            s.FeedURL,
			OriginalLinkPrefix: s.OriginalLinkPrefix,
			PostTextLimit:      s.PostTextLimit,
			Out:                cmd.OutOrStdout(),
		}
		posted, err := p.Run(ctx, items)
		if err != nil {
			return err
		}

		// Keep everything posted this run plus the newest min-save-posts
		// older entries.
		removed, err := ledger.Prune(s.MinSavePosts + posted)
		if err != nil {
			return err
		}
		slog.Debug("run finished", "posted", posted, "pruned", removed)
		return nil
	},
}

func flagOrEnv(cmd *cobra.Command, name, envKey string) string {
	v, _ := cmd.Flags().GetString(name)
	if v != "" {
		return v
	}
	return envOr(envKey, "")
}

func init() {
	runCmd.Flags().String("feed-url", "", "URL of the Mastodon RSS feed to mirror")
	runCmd.Flags().String("original-link-prefix", config.DefaultOriginalLinkPrefix, "Text placed before the link back to the toot")
	runCmd.Flags().Int("post-text-limit", config.DefaultPostTextLimit, "Rune budget for the whole post text")
	runCmd.Flags().String("atproto-identifier", "", "Bluesky handle or DID (env ATPROTO_IDENTIFIER)")
	runCmd.Flags().String("atproto-password", "", "Bluesky app password (env ATPROTO_PASSWORD)")
	rootCmd.AddCommand(runCmd)
}
