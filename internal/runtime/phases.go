package runtime

import (
	"context"

	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/hooks"
)

// leavePage runs the out-animation phase. The document is marked as
// changing/leaving through the animation:out:start default handler (so a
// replacement can take over the marking), then the phase blocks until
// every animated element reports transition completion.
func (c *Controller) leavePage(ctx context.Context, v *domain.Visit) error {
	if !v.Animate {
		_, err := c.registry.Trigger(ctx, domain.HookAnimationSkip, v,
			&domain.AnimationArgs{Selector: c.animationSelector}, nil)
		return err
	}

	args := &domain.AnimationArgs{Selector: c.animationSelector}
	markLeaving := func(ctx context.Context, ev *hooks.Event) (any, error) {
		classes := append(v.RootClasses(), domain.ClassLeaving)
		c.dom.AddClass(classes...)
		return nil, nil
	}
	if _, err := c.registry.Trigger(ctx, domain.HookAnimationOutStart, v, args, markLeaving); err != nil {
		return err
	}

	waits := c.collectTransitions(args)
	if err := c.awaitTransitions(ctx, waits); err != nil {
		return err
	}

	_, err := c.registry.Trigger(ctx, domain.HookAnimationOutEnd, v, args, nil)
	return err
}

// enterPage mirrors leavePage for the in-animation. The changing/leaving
// classes are cleared on completion even when entering is skipped or the
// phase fails, unless a newer visit owns the document by then.
func (c *Controller) enterPage(ctx context.Context, v *domain.Visit) (err error) {
	defer c.clearTransitionClasses(v)

	if !v.Animate {
		_, err = c.registry.Trigger(ctx, domain.HookAnimationSkip, v,
			&domain.AnimationArgs{Selector: c.animationSelector}, nil)
		return err
	}

	args := &domain.AnimationArgs{Selector: c.animationSelector}
	markEntering := func(ctx context.Context, ev *hooks.Event) (any, error) {
		c.dom.RemoveClass(domain.ClassLeaving)
		return nil, nil
	}
	if _, err := c.registry.Trigger(ctx, domain.HookAnimationInStart, v, args, markEntering); err != nil {
		return err
	}

	waits := c.collectTransitions(args)
	if err := c.awaitTransitions(ctx, waits); err != nil {
		return err
	}

	_, err = c.registry.Trigger(ctx, domain.HookAnimationInEnd, v, args, nil)
	return err
}

// clearTransitionClasses removes every phase class this visit may have
// added. A stale visit must not wipe the classes of the visit that
// superseded it, so the removal is skipped when v no longer owns the
// document.
func (c *Controller) clearTransitionClasses(v *domain.Visit) {
	if !c.isCurrent(v) {
		c.logger.Debug("leaving classes to the superseding visit", "visit", v.ID)
		return
	}
	names := []string{
		domain.ClassChanging,
		domain.ClassLeaving,
		domain.ClassRendering,
		domain.ClassAnimating,
		domain.ClassPopstate,
	}
	if v.TransitionName != "" {
		names = append(names, domain.ClassTransitionPrefix+v.TransitionName)
	}
	c.dom.RemoveClass(names...)
}

// defaultScroll is the built-in behavior of the scroll hook: scroll to the
// requested anchor, falling back to the top of the page.
func (c *Controller) defaultScroll(ctx context.Context, ev *hooks.Event) (any, error) {
	args, _ := ev.Args.(*domain.ScrollArgs)
	if args != nil && args.Target != "" {
		if c.dom.ScrollTo(args.Target) {
			return nil, nil
		}
		c.logger.Warn("scroll anchor not found", "anchor", args.Target)
	}
	c.dom.ScrollToTop()
	return nil, nil
}
