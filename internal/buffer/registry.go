package buffer

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry maps meeting identifiers to their isolated buffers. It is an
// explicitly owned object constructed at service start and injected into
// whatever performs ingestion or retrieval; there is no package-level state.
type Registry struct {
	mu           sync.RWMutex
	buffers      map[string]*meetingBuffer
	windowMillis int64
	logger       *zap.Logger

	// nowMillis supplies wall-clock time for retrieval-side pruning.
	// Overridable in tests.
	nowMillis func() int64
}

// NewRegistry creates an empty registry. windowMillis <= 0 falls back to
// the default 30 second window.
func NewRegistry(windowMillis int64, logger *zap.Logger) *Registry {
	if windowMillis <= 0 {
		windowMillis = DefaultWindowMillis
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		buffers:      make(map[string]*meetingBuffer),
		windowMillis: windowMillis,
		logger:       logger,
		nowMillis:    func() int64 { return time.Now().UnixMilli() },
	}
}

// Init creates an empty buffer for the meeting if one does not exist.
// No-op otherwise.
func (r *Registry) Init(meetingID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.buffers[meetingID]; exists {
		return
	}
	r.buffers[meetingID] = &meetingBuffer{}
}

// Clear removes and drains the buffer for the meeting. Safe to call on an
// unknown id. Both sequences are drained under the buffer's own lock, so
// any in-flight critical section either completes first or observes a
// consistent empty state. A subsequent ingest for the same id gets a
// fresh, distinct buffer.
func (r *Registry) Clear(meetingID string) {
	r.mu.Lock()
	b, exists := r.buffers[meetingID]
	if exists {
		delete(r.buffers, meetingID)
	}
	r.mu.Unlock()

	if !exists {
		return
	}

	b.mu.Lock()
	b.recent.Clear()
	b.history = nil
	b.mu.Unlock()

	r.logger.Debug("buffer.cleared", zap.String("meeting_id", meetingID))
}

// AddFinal stores a confirmed transcript fragment, rejecting a fragment
// whose normalized text equals the last entry currently in the recent
// view. Returns the stored entry and true, or a zero entry and false when
// nothing was stored.
func (r *Registry) AddFinal(meetingID, text string, timestamp int64) (Entry, bool) {
	return r.store(meetingID, text, timestamp, false, "final")
}

// AddPartial stores a provisional transcript fragment. Partials are never
// deduplicated.
func (r *Registry) AddPartial(meetingID, text string, timestamp int64) (Entry, bool) {
	return r.store(meetingID, text, timestamp, true, "partial")
}

// store is the shared ingestion routine. Ingestion never fails merely
// because Init was skipped: the buffer is created lazily so out-of-order
// setup from the upstream pipeline is harmless.
//
// Pruning is keyed off the incoming entry's own timestamp rather than the
// wall clock, so behavior is deterministic given a sequence of
// (text, timestamp) pairs regardless of real elapsed processing time.
func (r *Registry) store(meetingID, text string, timestamp int64, allowDuplicates bool, label string) (Entry, bool) {
	normalized := normalizeText(text)
	if normalized == "" {
		r.logger.Debug("buffer.skip_empty",
			zap.String("meeting_id", meetingID),
			zap.String("kind", label),
		)
		return Entry{}, false
	}

	b := r.lookupOrCreate(meetingID)
	entry := Entry{Text: normalized, Timestamp: timestamp}

	b.mu.Lock()
	defer b.mu.Unlock()

	// The adjacency check runs inside the buffer lock. Checking before
	// acquisition would save a lock round-trip on the duplicate-rejection
	// path but admits a race where two near-simultaneous finals both pass
	// the check and both append.
	if !allowDuplicates && b.recent.Len() > 0 && b.recent.Back().Text == normalized {
		r.logger.Debug("buffer.skip_duplicate",
			zap.String("meeting_id", meetingID),
			zap.String("kind", label),
		)
		return Entry{}, false
	}

	b.prune(entry.Timestamp - r.windowMillis)
	b.recent.PushBack(entry)
	b.history = append(b.history, entry)

	r.logger.Debug("buffer.stored",
		zap.String("meeting_id", meetingID),
		zap.String("kind", label),
		zap.Int("recent_size", b.recent.Len()),
		zap.Int("history_size", len(b.history)),
	)
	return entry, true
}

// Recent returns a snapshot of the meeting's windowed view, pruned against
// the current wall clock. Retrieval is the only place wall-clock time is
// used; ingestion prunes by event time to stay replayable. Unknown meeting
// ids yield an empty slice.
func (r *Registry) Recent(meetingID string) []Entry {
	b := r.lookup(meetingID)
	if b == nil {
		return []Entry{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune(r.nowMillis() - r.windowMillis)
	return b.snapshotRecent()
}

// Full returns a snapshot of the meeting's complete history without
// pruning. Unknown meeting ids yield an empty slice.
func (r *Registry) Full(meetingID string) []Entry {
	b := r.lookup(meetingID)
	if b == nil {
		return []Entry{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshotHistory()
}

// Size returns the number of meetings currently holding a buffer.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buffers)
}

func (r *Registry) lookup(meetingID string) *meetingBuffer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buffers[meetingID]
}

func (r *Registry) lookupOrCreate(meetingID string) *meetingBuffer {
	r.mu.RLock()
	b := r.buffers[meetingID]
	r.mu.RUnlock()
	if b != nil {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b = r.buffers[meetingID]; b == nil {
		b = &meetingBuffer{}
		r.buffers[meetingID] = b
	}
	return b
}
