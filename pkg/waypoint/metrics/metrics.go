// Package metrics exports router activity as Prometheus metrics. A Collector
// hands out router.Observer values, one per named router, and can watch a
// route registry's size.
package metrics

import (
	"strconv"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/engine"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector provides navigation metrics collection.
type Collector struct {
	registry  *prometheus.Registry
	namespace string

	operations     *prometheus.CounterVec
	depth          *prometheus.GaugeVec
	reconciled     *prometheus.CounterVec
	trimmed        *prometheus.CounterVec
	engineSelected *prometheus.CounterVec
}

// NewCollector creates a collector backed by its own Prometheus registry.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "waypoint"
	}

	c := &Collector{
		registry:  prometheus.NewRegistry(),
		namespace: namespace,
	}

	c.operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "operations_total",
			Help:      "Total number of programmatic navigation operations",
		},
		[]string{"router", "op"},
	)

	c.depth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "depth",
			Help:      "Current number of routes above the root",
		},
		[]string{"router"},
	)

	c.reconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "reconciliations_total",
			Help:      "Total number of times the logical stack was trimmed to match the host",
		},
		[]string{"router"},
	)

	c.trimmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "trimmed_routes_total",
			Help:      "Total number of routes removed by reconciliation",
		},
		[]string{"router"},
	)

	c.engineSelected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "selected_total",
			Help:      "Total number of engines selected, by kind",
		},
		[]string{"router", "engine"},
	)

	c.registry.MustRegister(
		c.operations,
		c.depth,
		c.reconciled,
		c.trimmed,
		c.engineSelected,
	)

	return c
}

// Registry returns the Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WatchRegistry exports the number of registered route types and register
// calls.
func (c *Collector) WatchRegistry(reg *route.Registry) {
	c.registry.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: c.namespace,
				Subsystem: "registry",
				Name:      "route_types",
				Help:      "Number of route types with a builder",
			},
			func() float64 { return float64(len(reg.TypeIDs())) },
		),
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Namespace: c.namespace,
				Subsystem: "registry",
				Name:      "registrations_total",
				Help:      "Total number of builder registrations, including overwrites",
			},
			func() float64 { return float64(reg.Registrations()) },
		),
	)
}

// Observer returns a router.Observer that records under the given router
// name. Pass it with router.WithObserver.
func (c *Collector) Observer(name string) router.Observer {
	return &observer{c: c, name: name}
}

type observer struct {
	c    *Collector
	name string
}

func (o *observer) EngineSelected(kind engine.Kind) {
	o.c.engineSelected.WithLabelValues(o.name, kind.String()).Inc()
}

func (o *observer) Navigated(op router.Op, depth int) {
	o.c.operations.WithLabelValues(o.name, string(op)).Inc()
	o.c.depth.WithLabelValues(o.name).Set(float64(depth))
}

func (o *observer) Reconciled(from, to int) {
	o.c.reconciled.WithLabelValues(o.name).Inc()
	o.c.trimmed.WithLabelValues(o.name).Add(float64(from - to))
	o.c.depth.WithLabelValues(o.name).Set(float64(to))
}

// String identifies the observer in logs.
func (o *observer) String() string {
	return "metrics(" + strconv.Quote(o.name) + ")"
}
