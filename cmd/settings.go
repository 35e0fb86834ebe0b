package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fedibridge/mstdn-rss2bsky-post/internal/config"
)

// settings is the merged view of flags, the optional config file, and the
// built-in defaults. Precedence: non-empty flag value given on the command
// line > config file > flag default.
type settings struct {
	XrpcHost     string
	DryRun       bool
	DBPath       string
	LockPath     string
	MinSavePosts int

	FeedURL            string
	OriginalLinkPrefix string
	PostTextLimit      int
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()
	var s settings

	cfgPath, _ := flags.GetString("config")
	file, err := config.Load(cfgPath)
	if err != nil {
		return s, err
	}

	s.XrpcHost = pickString(flags, "xrpc-host", file.XrpcHost)
	s.DryRun, _ = flags.GetBool("dry-run")
	s.MinSavePosts = pickInt(flags, "min-save-posts", file.MinSavePosts)

	s.DBPath = pickString(flags, "db-path", file.DBPath)
	if s.DBPath == "" {
		if s.DBPath, err = config.DBPath(); err != nil {
			return s, err
		}
	}
	s.LockPath = pickString(flags, "lock-path", file.LockPath)
	if s.LockPath == "" {
		if s.LockPath, err = config.LockPath(); err != nil {
			return s, err
		}
	}

	// run-only flags; absent on other commands
	if flags.Lookup("feed-url") != nil {
		s.FeedURL = pickString(flags, "feed-url", file.FeedURL)
		s.OriginalLinkPrefix = pickString(flags, "original-link-prefix", file.OriginalLinkPrefix)
		s.PostTextLimit = pickInt(flags, "post-text-limit", file.PostTextLimit)
	}

	return s, nil
}

func pickString(flags *pflag.FlagSet, name, fileValue string) string {
	v, _ := flags.GetString(name)
	if flags.Changed(name) && v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return v
}

func pickInt(flags *pflag.FlagSet, name string, fileValue int) int {
	v, _ := flags.GetInt(name)
	if flags.Changed(name) && v != 0 {
		return v
	}
	if fileValue != 0 {
		return fileValue
	}
	return v
}
