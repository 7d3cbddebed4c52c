package runtime

import (
	"context"
	"fmt"

	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/hooks"
)

// renderPage swaps the document to the loaded page. It is the stage with
// the irreversible side effects (history, DOM, cache), so it re-checks
// currency twice: on entry, and again after redirect resolution re-keys
// the visit.
func (c *Controller) renderPage(ctx context.Context, v *domain.Visit, page *domain.PageRecord) error {
	if !c.isCurrent(v) {
		c.logger.Debug("skipping render for superseded visit", "visit", v.ID)
		return domain.ErrVisitSuperseded
	}

	if page.Redirected() {
		c.logger.Debug("visit was redirected", "from", v.ResolvedURL, "to", page.ResponseURL)
		v.ResolvedURL = page.ResponseURL
	}
	if !c.isCurrent(v) {
		return domain.ErrVisitSuperseded
	}

	c.dom.AddClass(domain.ClassRendering)
	defer c.dom.RemoveClass(domain.ClassRendering)

	// History moves first so the address reflects the new page while its
	// content appears. History visits already moved the stack; they only
	// refresh the entry's marker and redirected address.
	if v.HistoryVisit {
		c.history.Replace(v.ResolvedURL)
	} else {
		c.history.Push(v.ResolvedURL)
	}

	swap := func(ctx context.Context, ev *hooks.Event) (any, error) {
		c.dom.SetTitle(page.Title)
		for _, block := range page.Blocks {
			if err := c.dom.ReplaceContent(block); err != nil {
				return nil, fmt.Errorf("replace %s: %w", block.Container, err)
			}
		}
		return nil, nil
	}
	if _, err := c.registry.Trigger(ctx, domain.HookContentReplace, v,
		&domain.ContentReplaceArgs{Page: page}, swap); err != nil {
		return err
	}

	if _, err := c.registry.Trigger(ctx, domain.HookPageView, v,
		&domain.PageViewArgs{URL: v.ResolvedURL, Title: page.Title}, nil); err != nil {
		return err
	}

	// With caching disabled the cache is emptied after every render so no
	// stale residue from other contributors survives.
	if !c.cacheEnabled {
		if err := c.cache.Clear(ctx); err != nil {
			c.logger.Warn("cache clear failed", "err", err)
		} else if _, herr := c.registry.TriggerSync(ctx, domain.HookCacheClear, v, nil, nil); herr != nil {
			c.logger.Warn("cache clear hook failed", "err", herr)
		}
	}

	if _, err := c.registry.Trigger(ctx, domain.HookScrollTop, v,
		&domain.ScrollArgs{Target: v.ScrollTarget}, c.defaultScroll); err != nil {
		return err
	}
	v.ScrollTarget = ""

	return nil
}
