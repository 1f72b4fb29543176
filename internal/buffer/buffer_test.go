package buffer

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain sentence", "hello world", "hello world."},
		{"keeps period", "done.", "done."},
		{"keeps exclamation", "Already done!", "Already done!"},
		{"keeps question mark", "ready?", "ready?"},
		{"collapses runs", "a   b\tc", "a b c."},
		{"trims edges", "  padded  ", "padded."},
		{"newlines", "line one\nline two", "line one line two."},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.in); got != tt.want {
				t.Fatalf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeetingBuffer_PruneStopsAtFirstLiveEntry(t *testing.T) {
	b := &meetingBuffer{}
	b.recent.PushBack(Entry{Text: "a.", Timestamp: 0})
	b.recent.PushBack(Entry{Text: "b.", Timestamp: 10})
	b.recent.PushBack(Entry{Text: "c.", Timestamp: 5})

	b.prune(8)

	// Timestamp 5 sits behind 10 and is shielded from front eviction.
	if b.recent.Len() != 2 {
		t.Fatalf("expected 2 entries after prune, got %d", b.recent.Len())
	}
	if b.recent.Front().Timestamp != 10 {
		t.Fatalf("expected front timestamp 10, got %d", b.recent.Front().Timestamp)
	}
}

func TestMeetingBuffer_PruneCutoffIsExclusive(t *testing.T) {
	b := &meetingBuffer{}
	b.recent.PushBack(Entry{Text: "edge.", Timestamp: 100})

	// Entries strictly older than the cutoff are evicted; an entry exactly
	// at the cutoff stays.
	b.prune(100)
	if b.recent.Len() != 1 {
		t.Fatalf("entry at cutoff must survive, got len %d", b.recent.Len())
	}

	b.prune(101)
	if b.recent.Len() != 0 {
		t.Fatalf("entry older than cutoff must be evicted, got len %d", b.recent.Len())
	}
}
