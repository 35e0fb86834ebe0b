// Package config handles file paths and the optional YAML configuration file.
//
// All settings can be supplied on the command line; the config file only
// provides defaults so cron entries stay short.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultXrpcHost is the PDS endpoint used when none is configured.
	DefaultXrpcHost = "https://bsky.social"

	// DefaultOriginalLinkPrefix labels the trailing link back to the toot.
	DefaultOriginalLinkPrefix = "[マストドン投稿から]:"

	// DefaultPostTextLimit matches the Bluesky post grapheme limit.
	DefaultPostTextLimit = 300

	// DefaultMinSavePosts is how many ledger entries pruning keeps.
	DefaultMinSavePosts = 50
)

// File models the optional YAML configuration file.
type File struct {
	FeedURL            string `yaml:"feed_url,omitempty"`
	XrpcHost           string `yaml:"xrpc_host,omitempty"`
	OriginalLinkPrefix string `yaml:"original_link_prefix,omitempty"`
	PostTextLimit      int    `yaml:"post_text_limit,omitempty"`
	MinSavePosts       int    `yaml:"min_save_posts,omitempty"`
	DBPath             string `yaml:"db_path,omitempty"`
	LockPath           string `yaml:"lock_path,omitempty"`
}

// Load reads and validates the config file at path. A missing file is not an
// error when the path is empty (no --config given); it yields zero values so
// flag defaults apply.
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, fmt.Errorf("config: %s does not exist", path)
		}
		return f, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("config: parse %s: %w", path, err)
	}
	f.normalize()
	if err := f.validate(); err != nil {
		return f, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

func (f *File) normalize() {
	f.FeedURL = strings.TrimSpace(f.FeedURL)
	f.XrpcHost = strings.TrimSpace(f.XrpcHost)
	f.DBPath = strings.TrimSpace(f.DBPath)
	f.LockPath = strings.TrimSpace(f.LockPath)
}

func (f File) validate() error {
	for _, u := range []string{f.FeedURL, f.XrpcHost} {
		if u == "" {
			continue
		}
		parsed, err := url.Parse(u)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("not an absolute URL: %q", u)
		}
	}
	if f.PostTextLimit < 0 {
		return fmt.Errorf("post_text_limit must be >= 0")
	}
	if f.MinSavePosts < 0 {
		return fmt.Errorf("min_save_posts must be >= 0")
	}
	return nil
}
