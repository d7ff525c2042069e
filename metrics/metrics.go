package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/roomfield/navigation"
)

// Collector turns navigation.UpdateStats into Prometheus series on a private registry
type Collector struct {
	registry *prometheus.Registry

	UpdatesTotal          *prometheus.CounterVec
	PointsProcessedTotal  prometheus.Counter
	RootsRemovedTotal     prometheus.Counter
	TilesActivatedTotal   prometheus.Counter
	TilesDeactivatedTotal prometheus.Counter
	UpdateDuration        *prometheus.HistogramVec
}

var _ navigation.Observer = (*Collector)(nil)

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		UpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roomfield_updates_total",
			Help: "Total mutating calls on the room distance map",
		}, []string{"op"}),
		PointsProcessedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roomfield_points_processed_total",
			Help: "Total wavefront pops",
		}),
		RootsRemovedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roomfield_roots_removed_total",
			Help: "Total pieces dropped as roots by tile deactivation",
		}),
		TilesActivatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roomfield_tiles_activated_total",
			Help: "Total tiles that became occupied",
		}),
		TilesDeactivatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roomfield_tiles_deactivated_total",
			Help: "Total tiles that became free",
		}),
		UpdateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roomfield_update_duration_seconds",
			Help:    "Duration of one mutating call",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
	}
	c.registry.MustRegister(
		c.UpdatesTotal,
		c.PointsProcessedTotal,
		c.RootsRemovedTotal,
		c.TilesActivatedTotal,
		c.TilesDeactivatedTotal,
		c.UpdateDuration,
	)
	return c
}

// ObserveUpdate implements navigation.Observer
func (c *Collector) ObserveUpdate(s navigation.UpdateStats) {
	op := string(s.Op)
	c.UpdatesTotal.WithLabelValues(op).Inc()
	c.PointsProcessedTotal.Add(float64(s.PointsProcessed))
	c.RootsRemovedTotal.Add(float64(s.RootsRemoved))
	c.TilesActivatedTotal.Add(float64(s.TilesActivated))
	c.TilesDeactivatedTotal.Add(float64(s.TilesDeactivated))
	c.UpdateDuration.WithLabelValues(op).Observe(s.Duration.Seconds())
}

// Registry exposes the private registry for gathering
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's series in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
