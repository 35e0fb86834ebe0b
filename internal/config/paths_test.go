package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPathsUnderDataDir(t *testing.T) {
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir(): %v", err)
	}
	if !strings.HasSuffix(dir, ".mstdn-rss2bsky-post") {
		t.Fatalf("unexpected data dir: %s", dir)
	}

	dbPath, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath(): %v", err)
	}
	if filepath.Dir(dbPath) != dir || filepath.Base(dbPath) != "ledger.db" {
		t.Fatalf("unexpected db path: %s", dbPath)
	}

	lockPath, err := LockPath()
	if err != nil {
		t.Fatalf("LockPath(): %v", err)
	}
	if filepath.Dir(lockPath) != dir || filepath.Base(lockPath) != "run.lock" {
		t.Fatalf("unexpected lock path: %s", lockPath)
	}
}
