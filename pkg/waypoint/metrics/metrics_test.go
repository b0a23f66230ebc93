package metrics_test

import (
	"strings"
	"testing"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host/memhost"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/metrics"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Screen struct{ Name string }

func newRouter(c *metrics.Collector, modern bool) (*router.Router[Screen], *memhost.Env[Screen]) {
	env := memhost.New[Screen](modern)
	r := router.New[Screen](env, func(s Screen) host.View { return s.Name },
		router.WithObserver(c.Observer("main")),
		router.WithLogger(internal.NopLogger()),
	)
	return r, env
}

func TestObserverRecordsNavigation(t *testing.T) {
	c := metrics.NewCollector("test")
	r, env := newRouter(c, true)

	r.Push(Screen{"a"})
	r.Push(Screen{"b"})
	r.Push(Screen{"c"})
	r.Pop()

	env.PathHost().UserSwipeBack()

	expected := `
# HELP test_router_depth Current number of routes above the root
# TYPE test_router_depth gauge
test_router_depth{router="main"} 1
# HELP test_router_operations_total Total number of programmatic navigation operations
# TYPE test_router_operations_total counter
test_router_operations_total{op="pop",router="main"} 1
test_router_operations_total{op="push",router="main"} 3
# HELP test_router_reconciliations_total Total number of times the logical stack was trimmed to match the host
# TYPE test_router_reconciliations_total counter
test_router_reconciliations_total{router="main"} 1
# HELP test_router_trimmed_routes_total Total number of routes removed by reconciliation
# TYPE test_router_trimmed_routes_total counter
test_router_trimmed_routes_total{router="main"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected),
		"test_router_depth",
		"test_router_operations_total",
		"test_router_reconciliations_total",
		"test_router_trimmed_routes_total",
	))
}

func TestEngineSelectionCountedOnce(t *testing.T) {
	c := metrics.NewCollector("")
	r, env := newRouter(c, false)

	r.Mount(func() host.View { return "root" })
	r.Push(Screen{"a"})
	r.Push(Screen{"b"})
	env.ControllerHost().TapBack()

	expected := `
# HELP waypoint_engine_selected_total Total number of engines selected, by kind
# TYPE waypoint_engine_selected_total counter
waypoint_engine_selected_total{engine="legacy",router="main"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "waypoint_engine_selected_total"))
	assert.Equal(t, []Screen{{"a"}}, r.CurrentStack())
}

type Plain struct{ N int }

func TestWatchRegistry(t *testing.T) {
	c := metrics.NewCollector("test")
	reg := route.NewRegistry(route.WithDebug(true), route.WithLogger(internal.NopLogger()))
	c.WatchRegistry(reg)

	route.RegisterMain(reg, func(s Screen) route.View { return s.Name })
	route.RegisterNonMain(reg, func(p Plain) route.View { return p.N })
	route.RegisterNonMain(reg, func(p Plain) route.View { return -p.N })

	expected := `
# HELP test_registry_registrations_total Total number of builder registrations, including overwrites
# TYPE test_registry_registrations_total counter
test_registry_registrations_total 3
# HELP test_registry_route_types Number of route types with a builder
# TYPE test_registry_route_types gauge
test_registry_route_types 2
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected),
		"test_registry_registrations_total",
		"test_registry_route_types",
	))
}

func TestCollectorCounts(t *testing.T) {
	c := metrics.NewCollector("test")
	obs := c.Observer("second")
	obs.Navigated(router.OpSetRoot, 2)
	obs.Reconciled(2, 0)

	n, err := testutil.GatherAndCount(c.Registry(), "test_router_reconciliations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = testutil.GatherAndCount(c.Registry(), "test_router_operations_total", "test_router_trimmed_routes_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
