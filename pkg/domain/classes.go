package domain

// CSS classes added to and removed from the document root to communicate
// transition phases. The engine never defines the animations themselves;
// external stylesheets attach transitions to these classes.
const (
	// ClassChanging is present for the whole visit, from leave start until
	// enter completion.
	ClassChanging = "is-changing"

	// ClassLeaving is present while the out-animation runs.
	ClassLeaving = "is-leaving"

	// ClassRendering is present while content is being swapped.
	ClassRendering = "is-rendering"

	// ClassAnimating is present whenever an animation phase is active.
	ClassAnimating = "is-animating"

	// ClassPopstate marks visits triggered by browser back/forward.
	ClassPopstate = "is-popstate"

	// ClassTransitionPrefix prefixes the custom transition name of a visit,
	// e.g. "to-slide" for a visit with transition name "slide".
	ClassTransitionPrefix = "to-"
)
