/*
Package eventlog provides an in-memory log of the ABCI events emitted while
finalizing blocks, letting RPC callers poll for oracle activity (tally
updates, event confirmations) without a persistent index. The finalization
pipeline hands each block's events to a Sender; a Logger goroutine folds them
into the shared EventLog, pruning entries as the log outgrows its configured
size or height window.
*/
package eventlog

import (
	"sync"

	abci "github.com/cometbft/cometbft/abci/types"
)

const (
	// DefaultMaxEvents is the default soft cap on the number of events the
	// log retains.
	DefaultMaxEvents = 50000

	// DefaultHeightWindow is the default maximum distance between the
	// newest and the oldest block height retained in the log.
	DefaultHeightWindow int64 = 1000

	// DefaultBufferSize is the default capacity of the channel between a
	// Sender and its Logger.
	DefaultBufferSize = 256
)

// Config bounds the growth of an EventLog.
type Config struct {
	// MaxEvents is the soft cap on the total number of retained events.
	// The newest entry is always kept, even when it alone exceeds the cap.
	MaxEvents int

	// HeightWindow is the maximum height distance between the newest and
	// the oldest retained entry.
	HeightWindow int64

	// BufferSize is the capacity of the channel feeding the Logger.
	BufferSize int
}

// DefaultConfig returns the default event log configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:    DefaultMaxEvents,
		HeightWindow: DefaultHeightWindow,
		BufferSize:   DefaultBufferSize,
	}
}

// Entry holds the events emitted while finalizing one block.
type Entry struct {
	Height int64
	Events []abci.Event
}

// node is one immutable link in the log. Readers walk next pointers without
// holding the log lock, so a node is never mutated once published.
type node struct {
	entry Entry
	next  *node
}

// EventLog is a concurrency-safe, size-bounded log of finalized block events,
// newest first.
type EventLog struct {
	cfg Config

	mtx       sync.RWMutex
	head      *node
	numEvents int
}

// NewEventLog creates an empty event log. Non-positive config values fall
// back to the defaults.
func NewEventLog(cfg Config) *EventLog {
	def := DefaultConfig()
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = def.MaxEvents
	}
	if cfg.HeightWindow <= 0 {
		cfg.HeightWindow = def.HeightWindow
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}

	return &EventLog{cfg: cfg}
}

// Add prepends one block's events to the log and prunes entries that fall
// outside the configured bounds.
func (l *EventLog) Add(entry Entry) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.head = &node{entry: entry, next: l.head}
	l.numEvents += len(entry.Events)

	l.prune()
}

// MatchedEvent pairs a logged event with the height it was emitted at.
type MatchedEvent struct {
	Height int64
	Event  abci.Event
}

// Match returns every logged event matching the query, newest block first.
// Matching walks a snapshot of the log, so concurrent Adds neither block nor
// alter the result.
func (l *EventLog) Match(matcher QueryMatcher) ([]MatchedEvent, error) {
	var matched []MatchedEvent

	for n := l.snapshot(); n != nil; n = n.next {
		for _, event := range n.entry.Events {
			ok, err := matcher.Matches(event)
			if err != nil {
				return nil, err
			}
			if ok {
				matched = append(matched, MatchedEvent{Height: n.entry.Height, Event: event})
			}
		}
	}

	return matched, nil
}

// Len returns the number of events currently retained.
func (l *EventLog) Len() int {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.numEvents
}

// OldestHeight returns the height of the oldest retained entry, or zero when
// the log is empty.
func (l *EventLog) OldestHeight() int64 {
	var oldest int64
	for n := l.snapshot(); n != nil; n = n.next {
		oldest = n.entry.Height
	}
	return oldest
}

func (l *EventLog) snapshot() *node {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.head
}

// prune drops the oldest entries until the log fits the configured bounds
// again. Dropped nodes may still be referenced by in-flight snapshots, so the
// retained chain is rebuilt instead of cutting the shared one. Callers must
// hold the write lock.
func (l *EventLog) prune() {
	if l.head == nil {
		return
	}
	newest := l.head.entry.Height

	kept := 0
	keptEvents := 0
	n := l.head
	for ; n != nil; n = n.next {
		if kept > 0 {
			if keptEvents+len(n.entry.Events) > l.cfg.MaxEvents {
				break
			}
			if newest-n.entry.Height > l.cfg.HeightWindow {
				break
			}
		}
		kept++
		keptEvents += len(n.entry.Events)
	}

	// n is the oldest entry falling outside the bounds, if any
	if n == nil {
		return
	}

	entries := make([]Entry, 0, kept)
	for n := l.head; len(entries) < kept; n = n.next {
		entries = append(entries, n.entry)
	}

	var rebuilt *node
	for i := len(entries) - 1; i >= 0; i-- {
		rebuilt = &node{entry: entries[i], next: rebuilt}
	}

	l.head = rebuilt
	l.numEvents = keptEvents
}
