// Package http serves a small demo site shaped for the navigation
// engine: every page carries the shared content container so a visit can
// swap it, and redirects and slow pages are first-class so cache and
// supersession behavior can be exercised against a real server.
package http

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veltran/swoop/internal/logging"
)

// DefaultContainer is the id of the swappable content element.
const DefaultContainer = "swoop"

// Page is one servable page of the site.
type Page struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
	// Body is the HTML placed inside the content container.
	Body string `yaml:"body"`
	// Delay postpones the response, for animation and supersession demos.
	Delay Duration `yaml:"delay,omitempty"`
}

// Site describes the whole fixture site.
type Site struct {
	Name  string `yaml:"name"`
	Pages []Page `yaml:"pages"`
	// Redirects maps a path to the path the server answers from instead.
	Redirects map[string]string `yaml:"redirects"`
}

// DemoSite returns the built-in three-page site used when no site file
// is given.
func DemoSite() Site {
	return Site{
		Name: "swoop demo",
		Pages: []Page{
			{Path: "/", Title: "Home", Body: "<h1>Home</h1><p><a href=\"/about\">About</a> <a href=\"/contact\">Contact</a></p>"},
			{Path: "/about", Title: "About", Body: "<h1>About</h1><p><a href=\"/\">Home</a></p>"},
			{Path: "/contact", Title: "Contact", Body: "<h1>Contact</h1><p><a href=\"/\">Home</a></p>"},
		},
		Redirects: map[string]string{"/about-us": "/about"},
	}
}

// Option configures the handler.
type Option func(*server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics mounts the given handler (usually promhttp.Handler) at
// /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *server) {
		s.metrics = h
	}
}

type server struct {
	site    Site
	logger  *slog.Logger
	metrics http.Handler
}

// NewHandler builds the site's HTTP handler.
func NewHandler(site Site, opts ...Option) http.Handler {
	s := &server{
		site:    site,
		logger:  logging.NewNop(),
		metrics: promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Mount("/metrics", s.metrics)

	for from, to := range site.Redirects {
		target := to
		r.Get(from, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, target, http.StatusFound)
		})
	}
	for _, page := range site.Pages {
		p := page
		r.Get(p.Path, func(w http.ResponseWriter, req *http.Request) {
			s.servePage(w, req, p)
		})
	}

	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		s.logger.Debug("request served",
			"method", req.Method,
			"path", req.URL.Path,
			"elapsed", time.Since(start),
		)
	})
}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *server) servePage(w http.ResponseWriter, req *http.Request, p Page) {
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay.Std()):
		case <-req.Context().Done():
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, renderPage(s.site, p))
}

// renderPage wraps the page body in the shared layout. The content
// container and the transition-fade class are what the engine keys on.
func renderPage(site Site, p Page) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(p.Title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "  <nav>%s</nav>\n", navLinks(site, p.Path))
	fmt.Fprintf(&b, "  <main id=%q class=\"transition-fade\">%s</main>\n", DefaultContainer, p.Body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func navLinks(site Site, current string) string {
	paths := make([]string, 0, len(site.Pages))
	for _, p := range site.Pages {
		paths = append(paths, p.Path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for i, path := range paths {
		if i > 0 {
			b.WriteString(" ")
		}
		if path == current {
			fmt.Fprintf(&b, "<span>%s</span>", html.EscapeString(path))
			continue
		}
		fmt.Fprintf(&b, "<a href=%q>%s</a>", path, html.EscapeString(path))
	}
	return b.String()
}
