// Package runtime implements the visit lifecycle controller: the state
// machine that takes one navigation from trigger through leave, load,
// render and enter, firing lifecycle hooks at every boundary.
//
// Concurrency model: pipelines are not serialized against each other. A
// new navigation may start while a prior one is still animating; instead
// of cancellation, every side-effecting stage re-checks that its visit is
// still the authoritative one and otherwise returns ErrVisitSuperseded
// without touching shared state. Animations already running on the
// document are left to finish on their own.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/veltran/swoop/internal/logging"
	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/hooks"
	"github.com/veltran/swoop/pkg/ports"
	"github.com/veltran/swoop/pkg/resolver"
)

// DefaultAnimationSelector matches the elements whose transitions gate the
// leave and enter phases.
const DefaultAnimationSelector = ".transition-fade"

// PopStateEvent describes a history activation reported by the host
// environment. Controlled marks entries the engine wrote itself.
type PopStateEvent struct {
	URL        string
	Controlled bool
}

// Controller owns the navigation state machine. At most one visit is
// current at any time; see the package documentation for the supersession
// rules.
type Controller struct {
	dom      ports.Document
	history  ports.History
	cache    ports.PageCache
	fetcher  ports.Fetcher
	resolver *resolver.Resolver
	registry *hooks.Registry
	logger   *slog.Logger

	animationSelector string
	animationTimeout  time.Duration
	cacheEnabled      bool
	popStatePred      func(PopStateEvent) bool

	mu      sync.Mutex
	current *domain.Visit
	seq     atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger for the controller and its hook
// registry.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAnimationSelector sets the selector whose elements gate the
// animation phases.
func WithAnimationSelector(selector string) Option {
	return func(c *Controller) {
		if selector != "" {
			c.animationSelector = selector
		}
	}
}

// WithAnimationTimeout caps the wait for transition completion. The
// default is no timeout, preserving the indefinite wait of the underlying
// protocol: a transition that never reports completion stalls its phase.
func WithAnimationTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.animationTimeout = d
	}
}

// WithCacheDisabled turns the content cache off. The cache is then
// emptied after every render so no stale residue survives.
func WithCacheDisabled() Option {
	return func(c *Controller) {
		c.cacheEnabled = false
	}
}

// WithPopStatePredicate decides which history activations the controller
// handles. The default handles only entries the engine wrote itself.
func WithPopStatePredicate(pred func(PopStateEvent) bool) Option {
	return func(c *Controller) {
		if pred != nil {
			c.popStatePred = pred
		}
	}
}

// NewController wires a controller from its capabilities.
func NewController(dom ports.Document, history ports.History, cache ports.PageCache, fetcher ports.Fetcher, res *resolver.Resolver, opts ...Option) *Controller {
	c := &Controller{
		dom:               dom,
		history:           history,
		cache:             cache,
		fetcher:           fetcher,
		resolver:          res,
		logger:            logging.NewNop(),
		animationSelector: DefaultAnimationSelector,
		cacheEnabled:      true,
		popStatePred:      func(ev PopStateEvent) bool { return ev.Controlled },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.registry = hooks.NewRegistry(hooks.WithLogger(c.logger))
	return c
}

// Hooks exposes the hook registry for handler registration.
func (c *Controller) Hooks() *hooks.Registry {
	return c.registry
}

// Cache exposes the page cache, mainly for plugins.
func (c *Controller) Cache() ports.PageCache {
	return c.cache
}

// Logger exposes the controller's logger, mainly for plugins.
func (c *Controller) Logger() *slog.Logger {
	return c.logger
}

// Resolver exposes the URL resolver.
func (c *Controller) Resolver() *resolver.Resolver {
	return c.resolver
}

// CurrentVisit returns the authoritative visit, or nil while idle.
func (c *Controller) CurrentVisit() *domain.Visit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) isCurrent(v *domain.Visit) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == v
}

// VisitOption customizes a programmatic navigation.
type VisitOption func(*domain.Visit)

// WithTransitionName selects a named custom transition for the visit.
func WithTransitionName(name string) VisitOption {
	return func(v *domain.Visit) {
		v.TransitionName = name
	}
}

// WithoutAnimation swaps content without the leave/enter phases.
func WithoutAnimation() VisitOption {
	return func(v *domain.Visit) {
		v.Animate = false
	}
}

// WithScrollTarget scrolls to a named anchor after render instead of the
// top of the page.
func WithScrollTarget(anchor string) VisitOption {
	return func(v *domain.Visit) {
		v.ScrollTarget = anchor
	}
}

// newVisit creates a visit and installs it as the authoritative one,
// superseding whatever was in flight.
func (c *Controller) newVisit(kind domain.TriggerKind, requested, resolved string, opts ...VisitOption) *domain.Visit {
	v := &domain.Visit{
		ID:           c.seq.Add(1),
		Trigger:      kind,
		RequestedURL: requested,
		ResolvedURL:  resolved,
		Animate:      true,
		CreatedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(v)
	}

	c.mu.Lock()
	if c.current != nil {
		c.logger.Debug("superseding in-flight visit", "old", c.current.ID, "new", v.ID)
	}
	c.current = v
	c.mu.Unlock()
	return v
}

// Navigate performs a programmatic visit to rawURL.
func (c *Controller) Navigate(ctx context.Context, rawURL string, opts ...VisitOption) error {
	resolved, err := c.resolver.Resolve(rawURL)
	if err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	v := c.newVisit(domain.TriggerManual, rawURL, resolved, opts...)
	return c.run(ctx, v)
}

// Click handles an anchor activation. Only plain same-origin clicks turn
// into visits; clicks on the current page scroll, everything else is left
// to the host environment.
func (c *Controller) Click(ctx context.Context, click resolver.LinkClick) error {
	decision := c.resolver.Classify(click, c.history.Current())

	switch decision.Action {
	case resolver.ActionIgnore:
		c.logger.Debug("link not intercepted", "url", click.URL, "reason", string(decision.Reason))
		return nil

	case resolver.ActionScrollTop, resolver.ActionScrollAnchor:
		_, err := c.registry.Trigger(ctx, domain.HookScrollTop, nil,
			&domain.ScrollArgs{Target: decision.Anchor}, c.defaultScroll)
		return err

	default: // resolver.ActionVisit
		v := c.newVisit(domain.TriggerLink, click.URL, decision.URL)
		v.TransitionName = click.TransitionName
		v.ScrollTarget = decision.Anchor
		if _, err := c.registry.TriggerSync(ctx, domain.HookLinkClick, v,
			&domain.LinkClickArgs{URL: decision.URL, TransitionName: click.TransitionName}, nil); err != nil {
			return err
		}
		return c.run(ctx, v)
	}
}

// PopState handles a history activation (back/forward). Activations the
// predicate rejects are ignored; the rest run as history visits, which
// replace rather than push their entry.
func (c *Controller) PopState(ctx context.Context, ev PopStateEvent) error {
	if !c.popStatePred(ev) {
		c.logger.Debug("ignoring popstate", "url", ev.URL, "controlled", ev.Controlled)
		return nil
	}
	resolved, err := c.resolver.Resolve(ev.URL)
	if err != nil {
		return fmt.Errorf("popstate: %w", err)
	}

	v := c.newVisit(domain.TriggerHistory, ev.URL, resolved)
	v.HistoryVisit = true
	if _, err := c.registry.TriggerSync(ctx, domain.HookHistoryPopstate, v,
		&domain.PopstateArgs{URL: resolved, Foreign: !ev.Controlled}, nil); err != nil {
		return err
	}
	return c.run(ctx, v)
}

// run drives one visit through the pipeline.
func (c *Controller) run(ctx context.Context, v *domain.Visit) error {
	if _, err := c.registry.Trigger(ctx, domain.HookVisitStart, v, nil, nil); err != nil {
		return err
	}

	if err := c.leavePage(ctx, v); err != nil {
		c.clearTransitionClasses(v)
		return err
	}

	page, err := c.loadPage(ctx, v)
	if err != nil {
		// The previous page stays displayed; drop the transition classes
		// the leave phase added, unless a newer visit owns them now.
		c.clearTransitionClasses(v)
		return err
	}

	if err := c.renderPage(ctx, v, page); err != nil {
		c.clearTransitionClasses(v)
		return err
	}

	if err := c.enterPage(ctx, v); err != nil {
		return err
	}

	_, err = c.registry.Trigger(ctx, domain.HookVisitEnd, v, nil, nil)
	return err
}

// Enable announces the controller to its hooks. The facade calls it once
// after mounting the initial plugin set.
func (c *Controller) Enable(ctx context.Context) error {
	_, err := c.registry.Trigger(ctx, domain.HookEnable, nil, nil, nil)
	return err
}

// Destroy tears the controller down: fires the disable hook, empties the
// cache and clears the hook table. The cache is emptied while handlers are
// still registered so cache:clear is observable during teardown.
func (c *Controller) Destroy(ctx context.Context) error {
	if _, err := c.registry.TriggerSync(ctx, domain.HookDisable, nil, nil, nil); err != nil {
		return err
	}
	if err := c.cache.Clear(ctx); err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	if _, err := c.registry.TriggerSync(ctx, domain.HookCacheClear, nil, nil, nil); err != nil {
		c.logger.Warn("cache clear hook failed", "err", err)
	}
	c.registry.Clear()
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
	return nil
}
