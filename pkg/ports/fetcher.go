package ports

import (
	"context"

	"github.com/veltran/swoop/pkg/domain"
)

// Fetcher retrieves the destination document of a visit and parses it into
// a page record. Implementations apply the configured request headers and
// follow redirects; the record keeps the requested URL and reports the
// final address through ResponseURL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*domain.PageRecord, error)
}
