package store

import (
	"path/filepath"
	"testing"
)

func setupLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "ledger.db"))
	if err != nil {
		t.Fatalf("Open(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewLedger(db)
}

func TestLedger_RecordAndContains(t *testing.T) {
	l := setupLedger(t)

	ok, err := l.Contains("https://mstdn.example/@me/1")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Fatalf("expected link to be absent")
	}

	e := Entry{
		Link:    "https://mstdn.example/@me/1",
		FeedURL: "https://mstdn.example/@me.rss",
		Cid:     "bafyrei123",
		URI:     "at://did:plc:abc/app.bsky.feed.post/xyz",
	}
	if err := l.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}

	ok, err = l.Contains("https://mstdn.example/@me/1")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatalf("expected link to be present")
	}
}

func TestLedger_DuplicateRecordFails(t *testing.T) {
	l := setupLedger(t)
	e := Entry{Link: "https://mstdn.example/@me/1"}
	if err := l.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := l.Record(e); err == nil {
		t.Fatalf("expected duplicate insert to fail")
	}
}

func TestLedger_PruneKeepsNewest(t *testing.T) {
	l := setupLedger(t)
	links := []string{
		"https://mstdn.example/@me/1",
		"https://mstdn.example/@me/2",
		"https://mstdn.example/@me/3",
		"https://mstdn.example/@me/4",
	}
	for _, link := range links {
		if err := l.Record(Entry{Link: link}); err != nil {
			t.Fatalf("Record(%s): %v", link, err)
		}
	}

	removed, err := l.Prune(2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	got, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Link != links[3] || got[1].Link != links[2] {
		t.Fatalf("unexpected surviving entries: %v", got)
	}
}

func TestLedger_Count(t *testing.T) {
	l := setupLedger(t)
	if err := l.Record(Entry{Link: "https://mstdn.example/@me/1"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	n, err := l.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected count 1, got %d", n)
	}
}

func TestOpen_ReopenExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open(): %v", err)
	}
	if err := NewLedger(db).Record(Entry{Link: "https://mstdn.example/@me/1"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = db.Close() }()
	ok, err := NewLedger(db).Contains("https://mstdn.example/@me/1")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatalf("expected entry to survive reopen")
	}
}
