package swoop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veltran/swoop/internal/logging"
	"github.com/veltran/swoop/internal/runtime"
	"github.com/veltran/swoop/pkg/adapters/headless"
	"github.com/veltran/swoop/pkg/adapters/memory"
	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/fetch"
	"github.com/veltran/swoop/pkg/hooks"
	"github.com/veltran/swoop/pkg/plugins"
	"github.com/veltran/swoop/pkg/ports"
	"github.com/veltran/swoop/pkg/resolver"
)

// Version is the release version, overridden at build time.
var Version = "dev"

// emptyShell is the document a headless engine starts on when none is
// injected.
const emptyShell = `<!DOCTYPE html>
<html><head><title></title></head>
<body><main id="swoop" class="transition-fade"></main></body></html>`

// Engine is the high-level entry point for the library. It wraps the
// internal visit controller and provides a simplified API for consumers.
type Engine struct {
	controller *Controller
	host       *plugins.Host
	logger     *slog.Logger

	dom     ports.Document
	history ports.History
	cache   ports.PageCache
	fetcher ports.Fetcher

	resolverOpts   []resolver.Option
	controllerOpts []runtime.Option
	initialPlugins []plugins.Plugin
}

// Controller is the visit state machine driving the engine.
type Controller = runtime.Controller

// Notification is one hook firing as seen by a Notify listener.
type Notification = domain.Notification

// Visit describes one navigation in flight.
type Visit = domain.Visit

// VisitOption customizes one navigation. See runtime for the available
// options.
type VisitOption = runtime.VisitOption

// PopStateEvent is a history activation reported by the host environment.
type PopStateEvent = runtime.PopStateEvent

// Re-exported visit options, so library consumers only import swoop.
var (
	WithTransitionName = runtime.WithTransitionName
	WithoutAnimation   = runtime.WithoutAnimation
	WithScrollTarget   = runtime.WithScrollTarget
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDocument injects the document the engine renders into. The default
// is a headless in-memory document, useful for tests and pipelines.
func WithDocument(dom ports.Document) Option {
	return func(e *Engine) {
		if dom != nil {
			e.dom = dom
		}
	}
}

// WithHistory injects the history stack. The default is a headless
// in-memory stack rooted at the base URL.
func WithHistory(h ports.History) Option {
	return func(e *Engine) {
		if h != nil {
			e.history = h
		}
	}
}

// WithCache injects the page cache. The default keeps pages in memory
// for the lifetime of the engine.
func WithCache(c ports.PageCache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithFetcher injects the page fetcher. The default is an HTTP client
// requesting full documents and extracting the content containers.
func WithFetcher(f ports.Fetcher) Option {
	return func(e *Engine) {
		if f != nil {
			e.fetcher = f
		}
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithNormalizer customizes URL path normalization.
func WithNormalizer(fn resolver.NormalizeFunc) Option {
	return func(e *Engine) {
		e.resolverOpts = append(e.resolverOpts, resolver.WithNormalizer(fn))
	}
}

// WithAnimationSelector sets the selector whose elements gate the
// animation phases.
func WithAnimationSelector(selector string) Option {
	return func(e *Engine) {
		e.controllerOpts = append(e.controllerOpts, runtime.WithAnimationSelector(selector))
	}
}

// WithAnimationTimeout caps the wait for transition completion.
func WithAnimationTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.controllerOpts = append(e.controllerOpts, runtime.WithAnimationTimeout(d))
	}
}

// WithCacheDisabled turns the content cache off.
func WithCacheDisabled() Option {
	return func(e *Engine) {
		e.controllerOpts = append(e.controllerOpts, runtime.WithCacheDisabled())
	}
}

// WithPopStatePredicate decides which history activations the engine
// handles.
func WithPopStatePredicate(pred func(PopStateEvent) bool) Option {
	return func(e *Engine) {
		e.controllerOpts = append(e.controllerOpts, runtime.WithPopStatePredicate(pred))
	}
}

// WithPlugins mounts the given plugins during New, before the enable
// hook fires.
func WithPlugins(ps ...plugins.Plugin) Option {
	return func(e *Engine) {
		e.initialPlugins = append(e.initialPlugins, ps...)
	}
}

// New initializes the engine for the site at baseURL. Capabilities not
// injected through options fall back to headless in-memory defaults, so
// a bare New is immediately usable in tests and tooling.
func New(baseURL string, opts ...Option) (*Engine, error) {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	res, err := resolver.New(baseURL, e.resolverOpts...)
	if err != nil {
		return nil, fmt.Errorf("swoop: %w", err)
	}

	if e.dom == nil {
		dom, err := headless.NewDocument(emptyShell, headless.WithLogger(e.logger))
		if err != nil {
			return nil, fmt.Errorf("swoop: build default document: %w", err)
		}
		e.dom = dom
	}
	if e.history == nil {
		root, err := res.Resolve(baseURL)
		if err != nil {
			return nil, fmt.Errorf("swoop: %w", err)
		}
		e.history = headless.NewHistory(root)
	}
	if e.cache == nil {
		e.cache = memory.NewCache()
	}
	if e.fetcher == nil {
		e.fetcher = fetch.New(res, fetch.WithLogger(e.logger))
	}

	ctrlOpts := append([]runtime.Option{runtime.WithLogger(e.logger)}, e.controllerOpts...)
	e.controller = runtime.NewController(e.dom, e.history, e.cache, e.fetcher, res, ctrlOpts...)
	e.host = plugins.NewHost(e.controller)

	for _, p := range e.initialPlugins {
		if err := e.host.Use(p); err != nil {
			return nil, fmt.Errorf("swoop: %w", err)
		}
	}
	if err := e.controller.Enable(context.Background()); err != nil {
		return nil, fmt.Errorf("swoop: enable: %w", err)
	}
	return e, nil
}

// Navigate performs a programmatic visit to rawURL.
func (e *Engine) Navigate(ctx context.Context, rawURL string, opts ...VisitOption) error {
	return e.controller.Navigate(ctx, rawURL, opts...)
}

// Click handles an anchor activation reported by the host environment.
func (e *Engine) Click(ctx context.Context, click resolver.LinkClick) error {
	return e.controller.Click(ctx, click)
}

// PopState handles a history activation (back/forward).
func (e *Engine) PopState(ctx context.Context, ev PopStateEvent) error {
	return e.controller.PopState(ctx, ev)
}

// Hooks exposes the hook registry for handler registration.
func (e *Engine) Hooks() *hooks.Registry {
	return e.controller.Hooks()
}

// Cache exposes the page cache.
func (e *Engine) Cache() ports.PageCache {
	return e.controller.Cache()
}

// Resolver exposes the URL resolver.
func (e *Engine) Resolver() *resolver.Resolver {
	return e.controller.Resolver()
}

// Document exposes the document the engine renders into.
func (e *Engine) Document() ports.Document {
	return e.dom
}

// History exposes the history stack.
func (e *Engine) History() ports.History {
	return e.history
}

// Use mounts a plugin onto the running engine.
func (e *Engine) Use(p plugins.Plugin) error {
	return e.host.Use(p)
}

// DisablePlugin unmounts the named plugin.
func (e *Engine) DisablePlugin(name string) error {
	return e.host.Disable(name)
}

// Plugins returns the names of the mounted plugins.
func (e *Engine) Plugins() []string {
	return e.host.Names()
}

// Destroy tears the engine down: plugins are unmounted, the disable hook
// fires, handlers and cache are dropped. The engine must not be used
// afterwards.
func (e *Engine) Destroy(ctx context.Context) error {
	if err := e.host.DisableAll(); err != nil {
		return err
	}
	return e.controller.Destroy(ctx)
}
