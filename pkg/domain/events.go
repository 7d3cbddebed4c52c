package domain

import "time"

// Notification is the externally observable record of a hook firing. Every
// trigger, sync or async, dispatches one to all registered listeners,
// independent of the typed handler table. Plugins and tests use it to watch
// lifecycle traffic without registering handlers.
type Notification struct {
	Timestamp time.Time `json:"timestamp"`
	Hook      HookName  `json:"hook"`
	Visit     *Visit    `json:"visit,omitempty"`
	Args      any       `json:"args,omitempty"`
}

// Listener receives notifications. Listeners run synchronously on the
// triggering goroutine and must not block.
type Listener func(Notification)
