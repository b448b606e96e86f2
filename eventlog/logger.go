package eventlog

import (
	"context"

	"cosmossdk.io/log"
)

// New creates an event log together with the Logger goroutine machinery
// feeding it. The returned Sender is handed to the block finalization
// pipeline; the Logger must be started with Run before entries are sent.
func New(logger log.Logger, cfg Config) (*EventLog, *Logger, Sender) {
	eventLog := NewEventLog(cfg)

	entries := make(chan Entry, eventLog.cfg.BufferSize)
	done := make(chan struct{})

	eventLogger := &Logger{
		log:     eventLog,
		logger:  logger.With("module", "eventlog"),
		entries: entries,
		done:    done,
	}
	sender := Sender{entries: entries, done: done}

	return eventLog, eventLogger, sender
}

// Logger drains block entries from its channel into the shared EventLog.
type Logger struct {
	log     *EventLog
	logger  log.Logger
	entries <-chan Entry
	done    chan struct{}
}

// Run consumes entries until the context is cancelled. Once it returns, all
// Senders are released and further sends are dropped.
func (l *Logger) Run(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("event log shutting down")
			return
		case entry := <-l.entries:
			if len(entry.Events) == 0 {
				continue
			}

			l.log.Add(entry)
			l.logger.Debug("logged block events", "height", entry.Height, "events", len(entry.Events))
		}
	}
}

// Sender hands the events of a finalized block to the Logger. It is safe to
// copy and to use after the Logger has stopped.
type Sender struct {
	entries chan<- Entry
	done    <-chan struct{}
}

// Send queues one block's events for logging. It blocks while the Logger's
// buffer is full and reports whether the entry was accepted; entries sent
// after the Logger stopped are dropped.
func (s Sender) Send(entry Entry) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.entries <- entry:
		return true
	case <-s.done:
		return false
	}
}
