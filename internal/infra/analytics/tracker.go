// Package analytics records wizard analytics events as structured log lines.
package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/logger"
	"github.com/ellytic/onboard/internal/ports"
)

// LogTracker writes every event to a slog logger under the "analytics.event" message.
type LogTracker struct {
	log *slog.Logger
}

// NewLogTracker uses the process logger when l is nil.
func NewLogTracker(l *slog.Logger) *LogTracker {
	return &LogTracker{log: l}
}

var _ ports.EventTracker = (*LogTracker)(nil)

func (t *LogTracker) Track(ctx context.Context, ev domain.Event) {
	l := t.log
	if l == nil {
		l = logger.L()
	}

	keys := make([]string, 0, len(ev.Properties))
	for k := range ev.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	props := make([]any, 0, len(keys))
	for _, k := range keys {
		props = append(props, slog.Any(k, ev.Properties[k]))
	}

	l.LogAttrs(ctx, slog.LevelInfo, "analytics.event",
		slog.String("event", ev.Name),
		slog.String("session_id", ev.SessionID),
		slog.Time("at", ev.At),
		slog.Group("props", props...),
	)
}

// Recorder keeps events in memory. The TUI uses it to show a session timeline.
type Recorder struct {
	mu     sync.Mutex
	events []domain.Event
	next   ports.EventTracker
}

// NewRecorder forwards every event to next after recording it. next may be nil.
func NewRecorder(next ports.EventTracker) *Recorder {
	return &Recorder{next: next}
}

var _ ports.EventTracker = (*Recorder)(nil)

func (r *Recorder) Track(ctx context.Context, ev domain.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	if r.next != nil {
		r.next.Track(ctx, ev)
	}
}

// Events returns a copy of what was recorded.
func (r *Recorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

// Names lists event names in order.
func (r *Recorder) Names() []string {
	evs := r.Events()
	out := make([]string, 0, len(evs))
	for _, e := range evs {
		out = append(out, e.Name)
	}
	return out
}
