// Package metrics exposes simulation and HTTP metrics through Prometheus
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/event"
)

// Namespace prefixes every metric name
const Namespace = "vigravity"

// Collector holds all Prometheus metrics for one simulation process
// It observes frames directly and merges through the event router
type Collector struct {
	registry *prometheus.Registry

	// Simulation metrics
	Frames        prometheus.Counter
	Substeps      prometheus.Counter
	Merges        *prometheus.CounterVec
	NonFinite     prometheus.Counter
	Bodies        prometheus.Gauge
	Photons       prometheus.Gauge
	SimTime       prometheus.Gauge
	StepSize      prometheus.Gauge
	FrameDuration prometheus.Histogram
	Events        *prometheus.CounterVec
	EventsDropped prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// lastDropped is the queue's cumulative eviction count at the previous frame
	lastDropped uint64
}

// NewCollector creates a collector on its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "frames_total",
			Help:      "Total number of simulated frames",
		}),
		Substeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "substeps_total",
			Help:      "Total number of integration substeps",
		}),
		Merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "merges_total",
			Help:      "Total number of collisions resolved as merges, by destroyed kind",
		}, []string{"kind"}),
		NonFinite: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "non_finite_total",
			Help:      "Frames that ended with non-finite state",
		}),
		Bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "bodies",
			Help:      "Bodies in the simulation",
		}),
		Photons: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "photons",
			Help:      "Photons in the simulation",
		}),
		SimTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sim_time_seconds",
			Help:      "Simulated seconds since the last scenario load",
		}),
		StepSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "step_size_seconds",
			Help:      "Simulated length of the last substep",
		}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "frame_duration_seconds",
			Help:      "Wall time spent advancing one frame",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_total",
			Help:      "Simulation events delivered to the collector, by type",
		}, []string{"type"}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_dropped_total",
			Help:      "Simulation events evicted from the queue before dispatch",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(
		c.Frames,
		c.Substeps,
		c.Merges,
		c.NonFinite,
		c.Bodies,
		c.Photons,
		c.SimTime,
		c.StepSize,
		c.FrameDuration,
		c.Events,
		c.EventsDropped,
		c.HTTPRequests,
		c.HTTPDuration,
	)
	return c
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveFrame implements engine.FrameObserver
func (c *Collector) ObserveFrame(st engine.FrameStats) {
	c.Frames.Inc()
	c.Substeps.Add(float64(st.Substeps))
	c.Bodies.Set(float64(st.Bodies))
	c.Photons.Set(float64(st.Photons))
	c.SimTime.Set(st.SimTime)
	c.StepSize.Set(st.StepSize)
	c.FrameDuration.Observe(st.Duration.Seconds())

	// A new queue restarts the cumulative count
	if st.EventsDropped > c.lastDropped {
		c.EventsDropped.Add(float64(st.EventsDropped - c.lastDropped))
	}
	c.lastDropped = st.EventsDropped
}

// EventTypes implements event.Handler
func (c *Collector) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBodyMerged,
		event.EventNonFinite,
		event.EventBodyInserted,
		event.EventBodyRemoved,
		event.EventPhotonsEmitted,
		event.EventPhotonsCleared,
		event.EventScenarioLoaded,
	}
}

// HandleEvent implements event.Handler
// Entity gauges are refreshed here too so edits between frames show up
func (c *Collector) HandleEvent(ev event.SimEvent) {
	c.Events.WithLabelValues(ev.Type.String()).Inc()
	switch p := ev.Payload.(type) {
	case *event.MergePayload:
		// Body gauge already reflects merges through ObserveFrame
		c.Merges.WithLabelValues(p.DestroyedKind.Key()).Inc()
	case *event.NonFinitePayload:
		c.NonFinite.Inc()
	case *event.BodyPayload:
		if ev.Type == event.EventBodyInserted {
			c.Bodies.Inc()
		} else {
			c.Bodies.Dec()
		}
	case *event.PhotonsPayload:
		if ev.Type == event.EventPhotonsEmitted {
			c.Photons.Add(float64(p.Count))
		} else {
			c.Photons.Sub(float64(p.Count))
		}
	case *event.ScenarioPayload:
		c.Bodies.Set(float64(p.Bodies))
		c.Photons.Set(float64(p.Photons))
		c.SimTime.Set(0)
	}
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
