package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/craftq/internal/logger"
	"github.com/abhisek/craftq/internal/store"
)

// Sink receives crafting notifications.
type Sink interface {
	Append(ctx context.Context, e Event) error
}

// Fanout delivers each event to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Append(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Append(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// JournalSink persists events to the store's crafting journal.
type JournalSink struct {
	repo store.EventRepo
}

// NewJournalSink creates a sink backed by repo.
func NewJournalSink(repo store.EventRepo) *JournalSink {
	return &JournalSink{repo: repo}
}

func (j *JournalSink) Append(ctx context.Context, e Event) error {
	return j.repo.AppendCraftEvent(ctx, store.CraftEventData{
		Kind:       string(e.Kind),
		Message:    e.Message,
		Timestamp:  e.Timestamp,
		Profession: e.Profession,
		RecipeID:   e.RecipeID,
		JobID:      e.JobID,
		ItemKind:   e.ItemKind,
		Quantity:   e.Quantity,
	})
}

// LogSink mirrors events to a structured logger.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink creates a sink that writes to log.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (l *LogSink) Append(_ context.Context, e Event) error {
	kv := []interface{}{"kind", string(e.Kind)}
	if e.Profession != "" {
		kv = append(kv, "profession", e.Profession)
	}
	if e.JobID != "" {
		kv = append(kv, "job_id", e.JobID)
	}
	if e.Kind == KindCraftingFailed {
		l.log.Warn(e.Message, kv...)
		return nil
	}
	l.log.Info(e.Message, kv...)
	return nil
}

// Recorder keeps events in memory. It backs the TUI log pane and tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewRecorder keeps at most limit events; zero keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Append(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = r.events[len(r.events)-r.limit:]
	}
	return nil
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
