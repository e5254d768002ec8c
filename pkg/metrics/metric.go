package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const NAMESPACE = "graphcut"

const (
	OUTCOME_OK       = "ok"
	OUTCOME_REJECTED = "rejected" // bad input
	OUTCOME_FAILED   = "failed"
)

// Metric owns a private prometheus registry with the go runtime and process collectors plus the
// solver and http metrics of the service.
type Metric struct {
	registry *prometheus.Registry

	solvesTotal    *prometheus.CounterVec
	solveDuration  prometheus.Histogram
	graphNodes     prometheus.Histogram
	graphEdges     prometheus.Histogram
	augmentations  prometheus.Histogram
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewMetric() *Metric {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	met := &Metric{registry: reg}

	met.solvesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: NAMESPACE,
		Name:      "solves_total",
		Help:      "Number of segmentation problems handled, by outcome.",
	}, []string{"outcome"})

	met.solveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: NAMESPACE,
		Name:      "solve_duration_seconds",
		Help:      "Time spent building and solving one problem.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
	})

	met.graphNodes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: NAMESPACE,
		Name:      "graph_nodes",
		Help:      "Number of nodes of solved graphs.",
		Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
	})

	met.graphEdges = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: NAMESPACE,
		Name:      "graph_edges",
		Help:      "Number of neighbour slots of solved graphs.",
		Buckets:   prometheus.ExponentialBuckets(16, 4, 11),
	})

	met.augmentations = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: NAMESPACE,
		Name:      "augmentations",
		Help:      "Augmenting paths found per solve.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	})

	met.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: NAMESPACE,
		Name:      "http_requests_total",
		Help:      "Number of http requests, by method, route and status.",
	}, []string{"method", "path", "status"})

	met.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: NAMESPACE,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of http requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	reg.MustRegister(met.solvesTotal, met.solveDuration, met.graphNodes, met.graphEdges,
		met.augmentations, met.requestsTotal, met.requestLatency)
	return met
}

// ObserveSolve records one solved (or rejected) problem.
func (met *Metric) ObserveSolve(outcome string, took time.Duration, nodes, edgeSlots int, augmentations uint64) {
	met.solvesTotal.WithLabelValues(outcome).Inc()
	if outcome != OUTCOME_OK {
		return
	}
	met.solveDuration.Observe(took.Seconds())
	met.graphNodes.Observe(float64(nodes))
	met.graphEdges.Observe(float64(edgeSlots))
	met.augmentations.Observe(float64(augmentations))
}

func (met *Metric) ObserveRequest(method, path string, status int, took time.Duration) {
	met.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	met.requestLatency.WithLabelValues(method, path).Observe(took.Seconds())
}

func (met *Metric) Registry() *prometheus.Registry {
	return met.registry
}

// Handler serves the registry in the prometheus exposition format.
func (met *Metric) Handler() http.Handler {
	return promhttp.HandlerFor(met.registry, promhttp.HandlerOpts{})
}
