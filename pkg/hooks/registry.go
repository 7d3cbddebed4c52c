package hooks

import (
	"context"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/veltran/swoop/internal/logging"
	"github.com/veltran/swoop/pkg/domain"
)

// Handler is a hook handler. It receives the firing event and returns an
// optional result. Returning a *Future defers the result; see the package
// documentation for how Trigger and TriggerSync treat pending futures.
type Handler func(ctx context.Context, ev *Event) (any, error)

// Event carries one hook firing to a handler.
type Event struct {
	Hook  domain.HookName
	Visit *domain.Visit
	Args  any

	// next is the default behavior this handler replaced, nil for
	// handlers outside the replace chain.
	next Handler
}

// Default invokes the behavior this handler replaced: the next-older
// replacement, or the built-in default for the innermost layer. For
// handlers not registered with Replace it is a no-op returning nil.
func (ev *Event) Default(ctx context.Context) (any, error) {
	if ev.next == nil {
		return nil, nil
	}
	return ev.next(ctx, ev)
}

// HasDefault reports whether Default would invoke anything.
func (ev *Event) HasDefault() bool {
	return ev.next != nil
}

// Options configures one handler registration. The zero value registers a
// plain handler that runs after the main handler, at priority 0.
type Options struct {
	// Priority orders handlers within their group; lower runs earlier.
	// Ties are broken by registration order.
	Priority int

	// Once removes the registration automatically after its first firing.
	Once bool

	// Before runs the handler ahead of the main handler.
	Before bool

	// Replace substitutes the handler for the hook's default behavior.
	// Multiple replacements nest, newest outermost; each receives the
	// next-older layer through Event.Default.
	Replace bool
}

type registration struct {
	id      uint64
	handler Handler
	opts    Options
}

// Registry is the hook table. Registration and unregistration are
// synchronous and safe for concurrent use; handlers themselves run on the
// triggering goroutine, outside the registry lock.
type Registry struct {
	mu        sync.Mutex
	handlers  map[domain.HookName][]*registration
	nextID    map[domain.HookName]uint64
	listeners map[uint64]domain.Listener
	nextLisID uint64
	logger    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		handlers:  make(map[domain.HookName][]*registration),
		nextID:    make(map[domain.HookName]uint64),
		listeners: make(map[uint64]domain.Listener),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// On registers a handler and returns a function that unregisters it.
// Unknown hook names are a logged no-op; the returned function does nothing.
func (r *Registry) On(name domain.HookName, h Handler, opts ...Options) func() {
	if !domain.KnownHook(name) {
		r.logger.Warn("ignoring registration for unknown hook", "hook", string(name))
		return func() {}
	}
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID[name]++
	reg := &registration{id: r.nextID[name], handler: h, opts: o}
	r.handlers[name] = append(r.handlers[name], reg)

	return func() { r.removeByID(name, reg.id) }
}

// Once registers a handler that fires at most one time.
func (r *Registry) Once(name domain.HookName, h Handler) func() {
	return r.On(name, h, Options{Once: true})
}

// Before registers a handler that runs ahead of the main handler.
func (r *Registry) Before(name domain.HookName, h Handler) func() {
	return r.On(name, h, Options{Before: true})
}

// Replace registers a handler that substitutes the hook's default behavior.
func (r *Registry) Replace(name domain.HookName, h Handler) func() {
	return r.On(name, h, Options{Replace: true})
}

// Off removes handlers. With no handler arguments it removes every handler
// for the hook; otherwise it removes the given handlers, warning for any
// that were not registered.
func (r *Registry) Off(name domain.HookName, hs ...Handler) {
	if !domain.KnownHook(name) {
		r.logger.Warn("ignoring unregistration for unknown hook", "hook", string(name))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(hs) == 0 {
		delete(r.handlers, name)
		return
	}

	for _, h := range hs {
		ptr := reflect.ValueOf(h).Pointer()
		found := false
		regs := r.handlers[name]
		for i, reg := range regs {
			if reflect.ValueOf(reg.handler).Pointer() == ptr {
				r.handlers[name] = append(regs[:i], regs[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			r.logger.Warn("handler not registered", "hook", string(name))
		}
	}
}

// Clear removes every handler for every hook. Listeners are kept.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[domain.HookName][]*registration)
}

// Notify adds an external observer that receives a notification for every
// hook firing. It returns a function that removes the listener.
func (r *Registry) Notify(l domain.Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextLisID++
	id := r.nextLisID
	r.listeners[id] = l
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Trigger fires a hook asynchronously-aware: before handlers run in order,
// each awaited to completion, then the main handler (the outermost
// replacement, or def), then the remaining handlers. It returns the main
// handler's settled result. Unknown hooks warn and return nil.
func (r *Registry) Trigger(ctx context.Context, name domain.HookName, visit *domain.Visit, args any, def Handler) (any, error) {
	return r.fire(ctx, name, visit, args, def, false)
}

// TriggerSync fires a hook with the same ordering as Trigger but never
// waits on a pending future: the result is captured unawaited and a
// warning is logged.
func (r *Registry) TriggerSync(ctx context.Context, name domain.HookName, visit *domain.Visit, args any, def Handler) (any, error) {
	return r.fire(ctx, name, visit, args, def, true)
}

func (r *Registry) fire(ctx context.Context, name domain.HookName, visit *domain.Visit, args any, def Handler, sync bool) (any, error) {
	if !domain.KnownHook(name) {
		r.logger.Warn("ignoring trigger of unknown hook", "hook", string(name))
		return nil, nil
	}

	befores, afters, replaces, listeners := r.snapshot(name)

	main := def
	// Fold the replace chain oldest to newest so the earliest replacement
	// wraps the true default and the latest one runs first.
	for _, rep := range replaces {
		inner := main
		h := rep.handler
		main = func(ctx context.Context, ev *Event) (any, error) {
			layered := *ev
			layered.next = inner
			return h(ctx, &layered)
		}
	}

	ev := &Event{Hook: name, Visit: visit, Args: args}

	for _, reg := range befores {
		if err := r.runObserver(ctx, name, ev, reg, sync); err != nil {
			return nil, err
		}
	}

	var result any
	var mainErr error
	if main != nil {
		result, mainErr = main(ctx, ev)
		if mainErr == nil {
			result, mainErr = r.settle(ctx, name, result, sync)
		}
	}

	for _, reg := range afters {
		if err := r.runObserver(ctx, name, ev, reg, sync); err != nil {
			return nil, err
		}
	}

	note := domain.Notification{
		Timestamp: time.Now(),
		Hook:      name,
		Visit:     visit,
		Args:      args,
	}
	for _, l := range listeners {
		l(note)
	}

	return result, mainErr
}

// runObserver executes a before/after handler. Observer failures must not
// break navigation: errors are logged and suppressed. Context cancellation
// still aborts the trigger.
func (r *Registry) runObserver(ctx context.Context, name domain.HookName, ev *Event, reg *registration, sync bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := reg.handler(ctx, ev)
	if err == nil {
		_, err = r.settle(ctx, name, val, sync)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.logger.Warn("hook handler failed", "hook", string(name), "err", err)
	}
	return nil
}

// settle resolves a handler result. Futures are awaited in async mode; in
// sync mode a pending future is returned as-is with a warning.
func (r *Registry) settle(ctx context.Context, name domain.HookName, val any, sync bool) (any, error) {
	fut, ok := val.(*Future)
	if !ok {
		return val, nil
	}
	if sync && fut.Pending() {
		r.logger.Warn("handler returned a pending future from synchronous trigger", "hook", string(name))
		return fut, nil
	}
	return fut.Wait(ctx)
}

// snapshot copies the ordered handler groups for one firing and prunes
// once-registrations so they can never fire twice, even reentrantly.
func (r *Registry) snapshot(name domain.HookName) (befores, afters, replaces []*registration, listeners []domain.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs := r.handlers[name]
	for _, reg := range regs {
		switch {
		case reg.opts.Replace:
			replaces = append(replaces, reg)
		case reg.opts.Before:
			befores = append(befores, reg)
		default:
			afters = append(afters, reg)
		}
	}

	byPriority := func(group []*registration) {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].opts.Priority != group[j].opts.Priority {
				return group[i].opts.Priority < group[j].opts.Priority
			}
			return group[i].id < group[j].id
		})
	}
	byPriority(befores)
	byPriority(afters)
	// The replace chain nests by registration time only, oldest innermost.
	sort.SliceStable(replaces, func(i, j int) bool { return replaces[i].id < replaces[j].id })

	kept := regs[:0]
	for _, reg := range regs {
		if !reg.opts.Once {
			kept = append(kept, reg)
		}
	}
	r.handlers[name] = kept

	listeners = make([]domain.Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	return befores, afters, replaces, listeners
}

func (r *Registry) removeByID(name domain.HookName, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	regs := r.handlers[name]
	for i, reg := range regs {
		if reg.id == id {
			r.handlers[name] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}
