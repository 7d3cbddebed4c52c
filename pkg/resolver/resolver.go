// Package resolver normalizes navigation addresses and classifies link
// activations. Resolved URLs are the engine's identity for pages: they key
// the content cache and back every "is this still the current page"
// comparison.
package resolver

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeFunc rewrites a resolved path before it is used as a page
// identity, e.g. to strip trailing slashes or tracking parameters.
type NormalizeFunc func(path string) string

// Resolver resolves raw addresses against a base URL and normalizes them
// into canonical page identities.
type Resolver struct {
	base      *url.URL
	normalize NormalizeFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNormalizer installs a custom path normalization function.
func WithNormalizer(fn NormalizeFunc) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.normalize = fn
		}
	}
}

// New creates a resolver anchored at base. base must be an absolute
// http(s) URL.
func New(base string, opts ...Option) (*Resolver, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base url must be absolute: %s", base)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported base url scheme: %s", u.Scheme)
	}

	r := &Resolver{
		base:      u,
		normalize: defaultNormalize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// defaultNormalize collapses a trailing slash so "/about" and "/about/"
// identify the same page. The root path stays "/".
func defaultNormalize(path string) string {
	if path == "" {
		return "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// Resolve turns a raw address into its canonical identity: absolute
// against the base, path normalized, fragment dropped.
func (r *Resolver) Resolve(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	resolved := r.base.ResolveReference(u)
	resolved.Path = r.normalize(resolved.Path)
	resolved.Fragment = ""
	return resolved.String(), nil
}

// Hash returns the fragment of a raw address, without the leading '#'.
func (r *Resolver) Hash(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Fragment
}

// SamePage reports whether two addresses identify the same page, ignoring
// fragments. Malformed addresses never match.
func (r *Resolver) SamePage(a, b string) bool {
	ra, err := r.Resolve(a)
	if err != nil {
		return false
	}
	rb, err := r.Resolve(b)
	if err != nil {
		return false
	}
	return ra == rb
}

// SameOrigin reports whether the address shares scheme and host with the
// base URL. Relative addresses are same-origin by construction.
func (r *Resolver) SameOrigin(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if !u.IsAbs() {
		return true
	}
	return strings.EqualFold(u.Scheme, r.base.Scheme) && strings.EqualFold(u.Host, r.base.Host)
}
