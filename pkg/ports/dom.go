package ports

import (
	"time"

	"github.com/veltran/swoop/pkg/domain"
)

// Element is one animatable node of the current document.
type Element interface {
	// TransitionDuration reports the declared transition duration for the
	// element. Zero means the element has no real transition: waiting on it
	// would never complete, so callers must treat it as already done.
	TransitionDuration() time.Duration

	// TransitionEnd returns a channel that is closed when the transition
	// currently affecting this exact element completes. For an element
	// without a transition the channel is already closed.
	TransitionEnd() <-chan struct{}
}

// Document is the capability the controller holds over the current page.
// Implementations must be safe for concurrent use: an in-flight visit's
// animations may still be finishing while a newer visit mutates content.
type Document interface {
	Title() string
	SetTitle(title string)

	// Query returns the elements matching a CSS selector. An empty result
	// is not an error; the caller decides how to degrade.
	Query(selector string) []Element

	// AddClass and RemoveClass mutate the class list of the document root,
	// which is the only channel through which transition phases are
	// communicated to stylesheets.
	AddClass(names ...string)
	RemoveClass(names ...string)

	// ReplaceContent swaps the children of the block's container with the
	// block's HTML fragment.
	ReplaceContent(block domain.Block) error

	// ScrollToTop resets the viewport. ScrollTo scrolls to a named anchor
	// and reports whether the anchor exists.
	ScrollToTop()
	ScrollTo(anchor string) bool
}

// History is the stack of navigation entries. Entries written through Push
// or Replace are marked as engine-originated so popstate handling can tell
// its own entries from foreign ones.
type History interface {
	// Current returns the URL of the active entry.
	Current() string

	Push(url string)
	Replace(url string)
}
