// Package headless implements the document and history capabilities
// without a browser. The document holds a parsed HTML tree, a class set on
// its root, and a table of declared transition durations per selector;
// transition-end events are synthesized by timers. It exists for
// server-side use of the engine and for exercising the full visit
// lifecycle in tests.
package headless

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/veltran/swoop/internal/htmlq"
	"github.com/veltran/swoop/internal/logging"
	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/ports"
)

// closedChan is the pre-resolved transition-end for non-animated elements.
var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Document implements ports.Document over a parsed HTML tree.
// Safe for concurrent use.
type Document struct {
	mu        sync.RWMutex
	root      *html.Node
	title     string
	classes   map[string]struct{}
	durations []durationRule
	scrolls   []string
	logger    *slog.Logger
}

type durationRule struct {
	match    htmlq.Matcher
	selector string
	duration time.Duration
}

// Option configures a Document.
type Option func(*Document)

// WithTransitionDuration declares that elements matching selector carry a
// CSS transition of the given duration. Elements without a matching rule
// have no transition and their waits resolve immediately.
func WithTransitionDuration(selector string, d time.Duration) Option {
	return func(doc *Document) {
		match, err := htmlq.MatcherFor(selector)
		if err != nil {
			doc.logger.Warn("ignoring invalid transition selector", "selector", selector, "err", err)
			return
		}
		doc.durations = append(doc.durations, durationRule{match: match, selector: selector, duration: d})
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(doc *Document) {
		if logger != nil {
			doc.logger = logger
		}
	}
}

// NewDocument parses src as the initial page.
func NewDocument(src string, opts ...Option) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{
		root:    root,
		classes: make(map[string]struct{}),
		logger:  logging.NewNop(),
	}
	doc.title = htmlq.TextContent(htmlq.FindFirst(root, func(n *html.Node) bool {
		return n.Data == "title"
	}))
	for _, opt := range opts {
		opt(doc)
	}
	return doc, nil
}

// Title returns the current document title.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// SetTitle updates the document title.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

// Query returns the elements matching selector. Each returned element owns
// its own synthesized transition-end signal.
func (d *Document) Query(selector string) []ports.Element {
	match, err := htmlq.MatcherFor(selector)
	if err != nil {
		d.logger.Warn("invalid selector", "selector", selector, "err", err)
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	nodes := htmlq.FindAll(d.root, match)
	elements := make([]ports.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &element{doc: d, node: n})
	}
	return elements
}

func (d *Document) durationFor(n *html.Node) time.Duration {
	// Last matching rule wins, like a later stylesheet rule.
	var dur time.Duration
	for _, rule := range d.durations {
		if rule.match(n) {
			dur = rule.duration
		}
	}
	return dur
}

// AddClass adds classes to the document root.
func (d *Document) AddClass(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, name := range names {
		d.classes[name] = struct{}{}
	}
}

// RemoveClass removes classes from the document root.
func (d *Document) RemoveClass(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, name := range names {
		delete(d.classes, name)
	}
}

// HasClass reports whether the root currently carries a class.
func (d *Document) HasClass(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.classes[name]
	return ok
}

// Classes returns the root's current class set.
func (d *Document) Classes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.classes))
	for name := range d.classes {
		out = append(out, name)
	}
	return out
}

// ReplaceContent swaps the children of the block's container with the
// block's HTML fragment.
func (d *Document) ReplaceContent(block domain.Block) error {
	match, err := htmlq.MatcherFor(block.Container)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	container := htmlq.FindFirst(d.root, match)
	if container == nil {
		return fmt.Errorf("container not found: %s", block.Container)
	}

	nodes, err := html.ParseFragment(strings.NewReader(block.HTML), container)
	if err != nil {
		return fmt.Errorf("parse fragment for %s: %w", block.Container, err)
	}

	for container.FirstChild != nil {
		container.RemoveChild(container.FirstChild)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return nil
}

// ContentOf returns the inner HTML of the first element matching selector,
// mainly for tests and the CLI preview.
func (d *Document) ContentOf(selector string) string {
	match, err := htmlq.MatcherFor(selector)
	if err != nil {
		return ""
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return htmlq.InnerHTML(htmlq.FindFirst(d.root, match))
}

// ScrollToTop records a scroll reset.
func (d *Document) ScrollToTop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrolls = append(d.scrolls, "")
}

// ScrollTo scrolls to a named anchor (id attribute) and reports whether
// the anchor exists.
func (d *Document) ScrollTo(anchor string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	found := htmlq.FindFirst(d.root, func(n *html.Node) bool {
		return htmlq.Attr(n, "id") == anchor
	}) != nil
	if found {
		d.scrolls = append(d.scrolls, anchor)
	}
	return found
}

// Scrolls returns the recorded scroll targets, "" meaning top of page.
func (d *Document) Scrolls() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.scrolls))
	copy(out, d.scrolls)
	return out
}

// element is one node of the document with a synthesized transition.
type element struct {
	doc  *Document
	node *html.Node

	once sync.Once
	end  chan struct{}
}

// TransitionDuration reports the configured duration for this element.
func (e *element) TransitionDuration() time.Duration {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.doc.durationFor(e.node)
}

// TransitionEnd returns a channel closed when the synthesized transition
// completes. Without a configured duration the channel is already closed.
func (e *element) TransitionEnd() <-chan struct{} {
	dur := e.TransitionDuration()
	if dur <= 0 {
		return closedChan
	}
	e.once.Do(func() {
		e.end = make(chan struct{})
		time.AfterFunc(dur, func() { close(e.end) })
	})
	return e.end
}
