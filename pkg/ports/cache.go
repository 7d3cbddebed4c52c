package ports

import (
	"context"

	"github.com/veltran/swoop/pkg/domain"
)

// PageCache persists fetched page records keyed by resolved URL.
// Keys are unique; storing an existing key overwrites (last write wins).
// Implementations must tolerate concurrent overwrites without merging.
type PageCache interface {
	// Store inserts or overwrites the record under record.URL.
	Store(ctx context.Context, record *domain.PageRecord) error

	// Lookup retrieves the record for a resolved URL.
	// Returns domain.ErrPageNotCached if the URL has not been stored.
	Lookup(ctx context.Context, url string) (*domain.PageRecord, error)

	// Remove deletes a single entry. Removing an absent key is not an error.
	Remove(ctx context.Context, url string) error

	// Clear empties the cache wholesale.
	Clear(ctx context.Context) error
}
