/*
Package plugins defines the extension surface of the engine.

A plugin is mounted once onto a running engine and extends it through the
hook registry: registering handlers, replacing default behaviors, or
subscribing as a notification listener. Unmounting must undo everything
the plugin registered.
*/
package plugins

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/veltran/swoop/pkg/hooks"
	"github.com/veltran/swoop/pkg/ports"
	"github.com/veltran/swoop/pkg/resolver"
)

// Runtime is the slice of the engine a plugin may touch.
type Runtime interface {
	Hooks() *hooks.Registry
	Cache() ports.PageCache
	Resolver() *resolver.Resolver
	Logger() *slog.Logger
}

// Plugin extends a running engine. Name must be unique among mounted
// plugins; Mount and Unmount are called at most once each per mounting.
type Plugin interface {
	Name() string
	Mount(rt Runtime) error
	Unmount(rt Runtime) error
}

// Host tracks mounted plugins and guarantees exactly-once mount and
// unmount per plugin name.
type Host struct {
	rt     Runtime
	logger *slog.Logger

	mu      sync.Mutex
	mounted map[string]Plugin
}

// NewHost creates a host bound to rt.
func NewHost(rt Runtime) *Host {
	return &Host{
		rt:      rt,
		logger:  rt.Logger(),
		mounted: make(map[string]Plugin),
	}
}

// Use mounts the plugin. Mounting a name that is already mounted is a
// logged no-op so a double Use cannot double-register hook handlers.
func (h *Host) Use(p Plugin) error {
	h.mu.Lock()
	if _, ok := h.mounted[p.Name()]; ok {
		h.mu.Unlock()
		h.logger.Warn("plugin already mounted", "plugin", p.Name())
		return nil
	}
	// Reserve the name before calling out so concurrent Use calls for the
	// same plugin cannot both mount it.
	h.mounted[p.Name()] = p
	h.mu.Unlock()

	if err := p.Mount(h.rt); err != nil {
		h.mu.Lock()
		delete(h.mounted, p.Name())
		h.mu.Unlock()
		return fmt.Errorf("mount plugin %s: %w", p.Name(), err)
	}
	h.logger.Debug("plugin mounted", "plugin", p.Name())
	return nil
}

// Disable unmounts the named plugin. Unknown names are a logged no-op.
func (h *Host) Disable(name string) error {
	h.mu.Lock()
	p, ok := h.mounted[name]
	if ok {
		delete(h.mounted, name)
	}
	h.mu.Unlock()

	if !ok {
		h.logger.Warn("plugin not mounted", "plugin", name)
		return nil
	}
	if err := p.Unmount(h.rt); err != nil {
		return fmt.Errorf("unmount plugin %s: %w", name, err)
	}
	h.logger.Debug("plugin unmounted", "plugin", name)
	return nil
}

// DisableAll unmounts every plugin. The first unmount error is returned
// after all plugins have been attempted.
func (h *Host) DisableAll() error {
	h.mu.Lock()
	ps := make([]Plugin, 0, len(h.mounted))
	for _, p := range h.mounted {
		ps = append(ps, p)
	}
	h.mounted = make(map[string]Plugin)
	h.mu.Unlock()

	var firstErr error
	for _, p := range ps {
		if err := p.Unmount(h.rt); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmount plugin %s: %w", p.Name(), err)
		}
	}
	return firstErr
}

// Mounted reports whether the named plugin is currently mounted.
func (h *Host) Mounted(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.mounted[name]
	return ok
}

// Names returns the mounted plugin names, unordered.
func (h *Host) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.mounted))
	for name := range h.mounted {
		names = append(names, name)
	}
	return names
}

// Func builds a Plugin from mount and unmount functions, for plugins with
// no state of their own.
func Func(name string, mount, unmount func(rt Runtime) error) Plugin {
	return &funcPlugin{name: name, mount: mount, unmount: unmount}
}

type funcPlugin struct {
	name    string
	mount   func(rt Runtime) error
	unmount func(rt Runtime) error
}

func (p *funcPlugin) Name() string { return p.name }

func (p *funcPlugin) Mount(rt Runtime) error {
	if p.mount == nil {
		return nil
	}
	return p.mount(rt)
}

func (p *funcPlugin) Unmount(rt Runtime) error {
	if p.unmount == nil {
		return nil
	}
	return p.unmount(rt)
}
