package observability

import (
	"sync"

	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/plugins"
)

// Recorder captures hook notifications in order. It backs diagnostics
// and assertions about what an engine actually did during a visit.
type Recorder struct {
	mu    sync.Mutex
	notes []domain.Notification
	unsub func()
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Name implements plugins.Plugin.
func (r *Recorder) Name() string { return "recorder" }

// Mount subscribes the recorder to hook notifications.
func (r *Recorder) Mount(rt plugins.Runtime) error {
	r.unsub = rt.Hooks().Notify(r.record)
	return nil
}

// Unmount drops the subscription. Captured notifications are kept.
func (r *Recorder) Unmount(rt plugins.Runtime) error {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
	return nil
}

func (r *Recorder) record(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

// Notifications returns a copy of everything captured so far.
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, len(r.notes))
	copy(out, r.notes)
	return out
}

// Hooks returns just the hook names, in firing order.
func (r *Recorder) Hooks() []domain.HookName {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.HookName, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Hook
	}
	return out
}

// Reset discards everything captured so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
