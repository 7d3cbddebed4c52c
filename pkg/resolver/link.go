package resolver

// LinkClick describes an anchor activation as reported by the host
// environment. The engine only ever sees plain data; deciding what to do
// with it is Classify's job.
type LinkClick struct {
	// URL is the anchor's href, absolute or relative.
	URL string

	// Target is the anchor's target attribute ("_blank" opens a new
	// browsing context and is never intercepted).
	Target string

	// Button is the mouse button: 0 for the primary button.
	Button int

	// Modifier keys held during the click. Any of them means the user
	// asked the browser for special handling (new tab, download, ...).
	Ctrl, Shift, Alt, Meta bool

	// TransitionName optionally names a custom transition for the visit.
	TransitionName string

	// Excluded marks anchors the site has opted out of interception.
	Excluded bool
}

// LinkAction is the classified outcome of a link activation.
type LinkAction string

const (
	// ActionVisit starts a full page transition.
	ActionVisit LinkAction = "visit"
	// ActionScrollTop re-scrolls the current page to the top.
	ActionScrollTop LinkAction = "scroll_top"
	// ActionScrollAnchor scrolls the current page to a named anchor.
	ActionScrollAnchor LinkAction = "scroll_anchor"
	// ActionIgnore leaves the activation to the host environment.
	ActionIgnore LinkAction = "ignore"
)

// SkipReason explains an ActionIgnore decision.
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipSecondaryButton SkipReason = "secondary_button"
	SkipModifierKey     SkipReason = "modifier_key"
	SkipNewContext      SkipReason = "new_context"
	SkipExternal        SkipReason = "external"
	SkipExcluded        SkipReason = "excluded"
	SkipInvalidURL      SkipReason = "invalid_url"
)

// LinkDecision is the result of classifying a link activation.
type LinkDecision struct {
	Action LinkAction
	// URL is the resolved destination for ActionVisit.
	URL string
	// Anchor is the fragment for ActionScrollAnchor.
	Anchor string
	Reason SkipReason
}

// Classify decides how the engine should respond to a link activation on
// the page identified by currentURL. Interception only applies to plain
// primary-button clicks on same-origin, non-excluded anchors; a click on a
// link to the current page scrolls instead of navigating.
func (r *Resolver) Classify(click LinkClick, currentURL string) LinkDecision {
	switch {
	case click.Button != 0:
		return LinkDecision{Action: ActionIgnore, Reason: SkipSecondaryButton}
	case click.Ctrl || click.Shift || click.Alt || click.Meta:
		return LinkDecision{Action: ActionIgnore, Reason: SkipModifierKey}
	case click.Target == "_blank":
		return LinkDecision{Action: ActionIgnore, Reason: SkipNewContext}
	case click.Excluded:
		return LinkDecision{Action: ActionIgnore, Reason: SkipExcluded}
	case !r.SameOrigin(click.URL):
		return LinkDecision{Action: ActionIgnore, Reason: SkipExternal}
	}

	resolved, err := r.Resolve(click.URL)
	if err != nil {
		return LinkDecision{Action: ActionIgnore, Reason: SkipInvalidURL}
	}

	if r.SamePage(click.URL, currentURL) {
		if hash := r.Hash(click.URL); hash != "" {
			return LinkDecision{Action: ActionScrollAnchor, Anchor: hash}
		}
		return LinkDecision{Action: ActionScrollTop}
	}

	return LinkDecision{Action: ActionVisit, URL: resolved, Anchor: r.Hash(click.URL)}
}
