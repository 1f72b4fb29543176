package buffer

import (
	"strings"
	"sync"

	"github.com/gammazero/deque"
)

// DefaultWindowMillis is the trailing span within which entries remain
// in the recent view.
const DefaultWindowMillis int64 = 30_000

// Entry is a single stored transcript fragment. Entries are immutable:
// created once at ingestion time and always handed out by value.
type Entry struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// meetingBuffer holds both views of one meeting's transcript. The recent
// view needs cheap pop-from-front and push-to-back; history only needs
// cheap append. They are kept as two separate containers so pruning the
// window can never alias into the full history.
type meetingBuffer struct {
	mu      sync.Mutex
	recent  deque.Deque[Entry]
	history []Entry
}

// prune evicts window-expired entries from the front of the recent view.
// Entries appended out of timestamp order may survive past their logical
// expiry until a later prune reaches them; front-only eviction is the
// intended behavior, keeping prune O(evicted) instead of a full scan.
// Caller must hold mu.
func (b *meetingBuffer) prune(cutoff int64) {
	for b.recent.Len() > 0 && b.recent.Front().Timestamp < cutoff {
		b.recent.PopFront()
	}
}

// snapshotRecent copies the recent view in order. Caller must hold mu.
func (b *meetingBuffer) snapshotRecent() []Entry {
	entries := make([]Entry, b.recent.Len())
	for i := 0; i < b.recent.Len(); i++ {
		entries[i] = b.recent.At(i)
	}
	return entries
}

// snapshotHistory copies the full history in order. Caller must hold mu.
func (b *meetingBuffer) snapshotHistory() []Entry {
	entries := make([]Entry, len(b.history))
	copy(entries, b.history)
	return entries
}

// normalizeText collapses whitespace runs into single spaces, trims the
// result, and guarantees terminal punctuation. Returns "" for fragments
// that contain no speech.
func normalizeText(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return ""
	}
	switch cleaned[len(cleaned)-1] {
	case '.', '!', '?':
	default:
		cleaned += "."
	}
	return cleaned
}
