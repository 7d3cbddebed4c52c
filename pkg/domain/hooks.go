package domain

import "net/http"

// HookName identifies a lifecycle extension point. The set of names is
// closed and pre-declared: registering or triggering an unknown name is a
// logged no-op, never an error surfaced to callers.
type HookName string

const (
	HookVisitStart        HookName = "visit:start"
	HookVisitEnd          HookName = "visit:end"
	HookLinkClick         HookName = "link:click"
	HookHistoryPopstate   HookName = "history:popstate"
	HookFetchRequest      HookName = "fetch:request"
	HookFetchError        HookName = "fetch:error"
	HookPageLoad          HookName = "page:load"
	HookCacheSet          HookName = "cache:set"
	HookCacheClear        HookName = "cache:clear"
	HookContentReplace    HookName = "content:replace"
	HookPageView          HookName = "page:view"
	HookScrollTop         HookName = "scroll:top"
	HookAnimationOutStart HookName = "animation:out:start"
	HookAnimationOutEnd   HookName = "animation:out:end"
	HookAnimationInStart  HookName = "animation:in:start"
	HookAnimationInEnd    HookName = "animation:in:end"
	HookAnimationSkip     HookName = "animation:skip"
	HookEnable            HookName = "enable"
	HookDisable           HookName = "disable"
)

var knownHooks = map[HookName]struct{}{
	HookVisitStart:        {},
	HookVisitEnd:          {},
	HookLinkClick:         {},
	HookHistoryPopstate:   {},
	HookFetchRequest:      {},
	HookFetchError:        {},
	HookPageLoad:          {},
	HookCacheSet:          {},
	HookCacheClear:        {},
	HookContentReplace:    {},
	HookPageView:          {},
	HookScrollTop:         {},
	HookAnimationOutStart: {},
	HookAnimationOutEnd:   {},
	HookAnimationInStart:  {},
	HookAnimationInEnd:    {},
	HookAnimationSkip:     {},
	HookEnable:            {},
	HookDisable:           {},
}

// KnownHook reports whether name belongs to the pre-declared hook set.
func KnownHook(name HookName) bool {
	_, ok := knownHooks[name]
	return ok
}

// Hook argument shapes, one per hook that carries data beyond the visit
// itself. Hooks without a dedicated struct fire with nil args.

// LinkClickArgs accompanies HookLinkClick.
type LinkClickArgs struct {
	URL            string `json:"url" mapstructure:"url"`
	TransitionName string `json:"transition_name,omitempty" mapstructure:"transition_name"`
}

// PopstateArgs accompanies HookHistoryPopstate. Foreign marks entries that
// were not written by the engine.
type PopstateArgs struct {
	URL     string `json:"url" mapstructure:"url"`
	Foreign bool   `json:"foreign,omitempty" mapstructure:"foreign"`
}

// FetchRequestArgs accompanies HookFetchRequest.
type FetchRequestArgs struct {
	URL    string      `json:"url" mapstructure:"url"`
	Header http.Header `json:"header,omitempty" mapstructure:"header"`
}

// FetchErrorArgs accompanies HookFetchError. Status is zero for transport
// failures that never produced a response.
type FetchErrorArgs struct {
	URL    string `json:"url" mapstructure:"url"`
	Status int    `json:"status,omitempty" mapstructure:"status"`
	Err    error  `json:"-" mapstructure:"-"`
}

// PageLoadArgs accompanies HookPageLoad.
type PageLoadArgs struct {
	URL       string      `json:"url" mapstructure:"url"`
	Page      *PageRecord `json:"page,omitempty" mapstructure:"page"`
	FromCache bool        `json:"from_cache,omitempty" mapstructure:"from_cache"`
}

// CacheSetArgs accompanies HookCacheSet.
type CacheSetArgs struct {
	Page *PageRecord `json:"page" mapstructure:"page"`
}

// ContentReplaceArgs accompanies HookContentReplace.
type ContentReplaceArgs struct {
	Page *PageRecord `json:"page" mapstructure:"page"`
}

// PageViewArgs accompanies HookPageView.
type PageViewArgs struct {
	URL   string `json:"url" mapstructure:"url"`
	Title string `json:"title,omitempty" mapstructure:"title"`
}

// ScrollArgs accompanies HookScrollTop. Target is the anchor to scroll to,
// or empty for top of page.
type ScrollArgs struct {
	Target string `json:"target,omitempty" mapstructure:"target"`
}

// AnimationArgs accompanies the animation phase hooks.
type AnimationArgs struct {
	Selector string `json:"selector" mapstructure:"selector"`
	Elements int    `json:"elements" mapstructure:"elements"`
}
