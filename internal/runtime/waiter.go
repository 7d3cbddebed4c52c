package runtime

import (
	"context"
	"time"

	"github.com/veltran/swoop/pkg/domain"
)

// collectTransitions returns one completion channel per animated element
// matching the configured selector. Transition end gives no "all done"
// signal, so the phase completes when every individual channel has fired.
//
// Misconfiguration must never deadlock navigation: no matching elements,
// or a matched element without a real transition duration, degrade to
// "already complete" with a diagnostic.
func (c *Controller) collectTransitions(args *domain.AnimationArgs) []<-chan struct{} {
	elements := c.dom.Query(c.animationSelector)
	args.Elements = len(elements)

	if len(elements) == 0 {
		c.logger.Warn("no elements match animation selector, resolving immediately",
			"selector", c.animationSelector)
		return nil
	}

	waits := make([]<-chan struct{}, 0, len(elements))
	for _, el := range elements {
		if el.TransitionDuration() <= 0 {
			c.logger.Warn("element has no transition duration, treating as complete",
				"selector", c.animationSelector)
			continue
		}
		waits = append(waits, el.TransitionEnd())
	}
	return waits
}

// awaitTransitions joins the completion channels. Without a configured
// timeout the wait is indefinite; a transition that never reports
// completion stalls the phase, by inherited protocol semantics.
func (c *Controller) awaitTransitions(ctx context.Context, waits []<-chan struct{}) error {
	if len(waits) == 0 {
		return nil
	}

	var timeout <-chan time.Time
	if c.animationTimeout > 0 {
		timer := time.NewTimer(c.animationTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for _, wait := range waits {
		select {
		case <-wait:
		case <-timeout:
			c.logger.Warn("animation wait timed out", "timeout", c.animationTimeout)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
