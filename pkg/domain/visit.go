package domain

import "time"

// TriggerKind identifies what started a navigation.
type TriggerKind string

const (
	// TriggerLink is an intercepted anchor click.
	TriggerLink TriggerKind = "link"
	// TriggerHistory is a browser back/forward (popstate) navigation.
	TriggerHistory TriggerKind = "history"
	// TriggerManual is a programmatic navigation.
	TriggerManual TriggerKind = "manual"
)

// Visit represents one in-flight navigation attempt. It is created when a
// navigation intent arrives and is owned exclusively by the controller for
// its duration. A visit carries no completion signal of its own: when a
// newer visit starts, later pipeline stages of the older one detect that
// they are no longer current and skip their side effects.
type Visit struct {
	// ID is monotonically increasing per controller and identifies the
	// visit in logs and notifications.
	ID uint64 `json:"id"`

	Trigger TriggerKind `json:"trigger"`

	// RequestedURL is the address as given; ResolvedURL is the address
	// after path normalization, used for cache keys and currency checks.
	// ResolvedURL is re-resolved when the fetch follows a redirect.
	RequestedURL string `json:"requested_url"`
	ResolvedURL  string `json:"resolved_url"`

	// TransitionName optionally selects a custom transition; when set, the
	// root element additionally carries a "to-<name>" class for the
	// duration of the visit.
	TransitionName string `json:"transition_name,omitempty"`

	// HistoryVisit marks back/forward navigation: the history stack has
	// already moved, so render must not push a new entry.
	HistoryVisit bool `json:"history_visit,omitempty"`

	// Animate gates the leave/enter phases. Programmatic navigation may
	// disable it to swap content without transitions.
	Animate bool `json:"animate"`

	// ScrollTarget is the anchor to scroll to after render, or empty for
	// top of page. Cleared by the render phase once applied.
	ScrollTarget string `json:"scroll_target,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// RootClasses returns the CSS classes that mark the document root while
// this visit is transitioning.
func (v *Visit) RootClasses() []string {
	classes := []string{ClassChanging, ClassAnimating}
	if v.HistoryVisit {
		classes = append(classes, ClassPopstate)
	}
	if v.TransitionName != "" {
		classes = append(classes, ClassTransitionPrefix+v.TransitionName)
	}
	return classes
}
