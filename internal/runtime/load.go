package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/fetch"
	"github.com/veltran/swoop/pkg/hooks"
)

// loadPage resolves cache-or-fetch for the visit's destination. The whole
// resolution is the page:load hook's default handler, so plugins can
// observe it, augment it, or replace the loading strategy entirely.
func (c *Controller) loadPage(ctx context.Context, v *domain.Visit) (*domain.PageRecord, error) {
	result, err := c.registry.Trigger(ctx, domain.HookPageLoad, v,
		&domain.PageLoadArgs{URL: v.ResolvedURL}, c.defaultLoad)
	if err != nil {
		return nil, err
	}
	page, ok := result.(*domain.PageRecord)
	if !ok || page == nil {
		return nil, fmt.Errorf("page load produced no page for %s", v.ResolvedURL)
	}
	return page, nil
}

// defaultLoad is the built-in loading strategy: consult the cache, fetch
// on miss, store the result. A fetch failure fires the fetch error hook
// and aborts the visit; the current page stays displayed.
func (c *Controller) defaultLoad(ctx context.Context, ev *hooks.Event) (any, error) {
	args, ok := ev.Args.(*domain.PageLoadArgs)
	if !ok {
		return nil, fmt.Errorf("page load fired without load args")
	}
	url := args.URL

	if c.cacheEnabled {
		page, err := c.cache.Lookup(ctx, url)
		switch {
		case err == nil:
			c.logger.Debug("cache hit", "url", url)
			args.Page = page
			args.FromCache = true
			return page, nil
		case !errors.Is(err, domain.ErrPageNotCached):
			// A broken cache degrades to fetching, never to a dead visit.
			c.logger.Warn("cache lookup failed", "url", url, "err", err)
		}
	}

	if _, err := c.registry.TriggerSync(ctx, domain.HookFetchRequest, ev.Visit,
		&domain.FetchRequestArgs{URL: url}, nil); err != nil {
		return nil, err
	}

	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		errArgs := &domain.FetchErrorArgs{URL: url, Err: err}
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			errArgs.Status = statusErr.Status
		}
		if _, herr := c.registry.Trigger(ctx, domain.HookFetchError, ev.Visit, errArgs, nil); herr != nil {
			c.logger.Warn("fetch error hook failed", "err", herr)
		}
		return nil, err
	}

	if c.cacheEnabled {
		record := page
		if page.Redirected() {
			// Cache under the address the server answered from so the
			// next visit to the final URL hits.
			record = page.Clone()
			record.URL = page.ResponseURL
		}
		if err := c.cache.Store(ctx, record); err != nil {
			c.logger.Warn("cache store failed", "url", record.URL, "err", err)
		} else if _, herr := c.registry.TriggerSync(ctx, domain.HookCacheSet, ev.Visit,
			&domain.CacheSetArgs{Page: record}, nil); herr != nil {
			c.logger.Warn("cache set hook failed", "err", herr)
		}
	}

	args.Page = page
	return page, nil
}
