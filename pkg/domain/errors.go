package domain

import "errors"

// ErrPageNotCached is returned when a URL cannot be found in a page cache.
var ErrPageNotCached = errors.New("page not cached")

// ErrVisitSuperseded is returned when a pipeline stage finds that a newer
// visit has become current; the stale visit must skip its side effects.
var ErrVisitSuperseded = errors.New("visit superseded")

// ErrUnknownHook is recorded when a hook name outside the pre-declared set
// is used. It is logged, never returned across the public API.
var ErrUnknownHook = errors.New("unknown hook")
