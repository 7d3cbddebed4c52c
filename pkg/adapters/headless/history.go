package headless

import "sync"

// Entry is one history record. Controlled marks entries written by the
// engine, which is how popstate handling tells its own entries from
// foreign ones.
type Entry struct {
	URL        string
	Controlled bool
}

// History implements ports.History as an in-process entry stack with a
// cursor, mimicking the browser's session history.
type History struct {
	mu      sync.Mutex
	entries []Entry
	idx     int
}

// NewHistory creates a history with one initial, foreign entry.
func NewHistory(initial string) *History {
	return &History{
		entries: []Entry{{URL: initial}},
	}
}

// Current returns the URL of the active entry.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.idx].URL
}

// Push appends a controlled entry after the cursor, discarding any forward
// entries, exactly like the browser does.
func (h *History) Push(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.idx+1], Entry{URL: url, Controlled: true})
	h.idx = len(h.entries) - 1
}

// Replace overwrites the active entry with a controlled one.
func (h *History) Replace(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.idx] = Entry{URL: url, Controlled: true}
}

// Back moves the cursor backwards and returns the activated entry, false
// when already at the oldest entry. It is how tests and the CLI simulate
// the browser's back button.
func (h *History) Back() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.idx == 0 {
		return Entry{}, false
	}
	h.idx--
	return h.entries[h.idx], true
}

// Forward moves the cursor forwards and returns the activated entry.
func (h *History) Forward() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.idx >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.idx++
	return h.entries[h.idx], true
}

// Len reports the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the stack, for inspection.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}
