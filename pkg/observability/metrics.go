package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/veltran/swoop/pkg/domain"
	"github.com/veltran/swoop/pkg/plugins"
)

// MetricsPlugin exports navigation counters to a Prometheus registerer.
// It observes the engine purely through hook notifications and never
// alters navigation behavior.
type MetricsPlugin struct {
	registerer prometheus.Registerer
	unsub      func()

	visitsStarted  *prometheus.CounterVec
	visitsFinished prometheus.Counter
	fetches        prometheus.Counter
	fetchErrors    *prometheus.CounterVec
	cacheSets      prometheus.Counter
	cacheClears    prometheus.Counter
	pageLoads      prometheus.Counter
}

// MetricsOption configures a MetricsPlugin.
type MetricsOption func(*MetricsPlugin)

// WithRegisterer sets the Prometheus registerer. The default is the
// global prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) MetricsOption {
	return func(p *MetricsPlugin) {
		if reg != nil {
			p.registerer = reg
		}
	}
}

// NewMetricsPlugin creates the plugin. Collectors are registered on
// Mount and unregistered on Unmount, so a plugin instance can move
// between engines.
func NewMetricsPlugin(opts ...MetricsOption) *MetricsPlugin {
	p := &MetricsPlugin{
		registerer: prometheus.DefaultRegisterer,
		visitsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swoop",
			Name:      "visits_started_total",
			Help:      "Visits started, by trigger kind.",
		}, []string{"trigger"}),
		visitsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swoop",
			Name:      "visits_finished_total",
			Help:      "Visits that completed the full pipeline.",
		}),
		fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swoop",
			Name:      "fetches_total",
			Help:      "Network requests issued for page content.",
		}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swoop",
			Name:      "fetch_errors_total",
			Help:      "Failed page fetches, by HTTP status (0 for transport errors).",
		}, []string{"status"}),
		cacheSets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swoop",
			Name:      "cache_sets_total",
			Help:      "Pages written to the content cache.",
		}),
		cacheClears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swoop",
			Name:      "cache_clears_total",
			Help:      "Times the content cache was emptied.",
		}),
		pageLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swoop",
			Name:      "page_loads_total",
			Help:      "Pages resolved for rendering, from cache or network.",
		}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements plugins.Plugin.
func (p *MetricsPlugin) Name() string { return "metrics" }

// Mount registers the collectors and subscribes to hook notifications.
func (p *MetricsPlugin) Mount(rt plugins.Runtime) error {
	for _, c := range p.collectors() {
		if err := p.registerer.Register(c); err != nil {
			p.unregister()
			return err
		}
	}
	p.unsub = rt.Hooks().Notify(p.observe)
	return nil
}

// Unmount removes the subscription and the collectors.
func (p *MetricsPlugin) Unmount(rt plugins.Runtime) error {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	p.unregister()
	return nil
}

func (p *MetricsPlugin) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.visitsStarted, p.visitsFinished, p.fetches,
		p.fetchErrors, p.cacheSets, p.cacheClears, p.pageLoads,
	}
}

func (p *MetricsPlugin) unregister() {
	for _, c := range p.collectors() {
		p.registerer.Unregister(c)
	}
}

func (p *MetricsPlugin) observe(n domain.Notification) {
	switch n.Hook {
	case domain.HookVisitStart:
		trigger := "unknown"
		if n.Visit != nil {
			trigger = string(n.Visit.Trigger)
		}
		p.visitsStarted.WithLabelValues(trigger).Inc()
	case domain.HookVisitEnd:
		p.visitsFinished.Inc()
	case domain.HookFetchRequest:
		p.fetches.Inc()
	case domain.HookFetchError:
		status := "0"
		if args, ok := n.Args.(*domain.FetchErrorArgs); ok && args.Status != 0 {
			status = strconv.Itoa(args.Status)
		}
		p.fetchErrors.WithLabelValues(status).Inc()
	case domain.HookCacheSet:
		p.cacheSets.Inc()
	case domain.HookCacheClear:
		p.cacheClears.Inc()
	case domain.HookPageLoad:
		p.pageLoads.Inc()
	}
}
