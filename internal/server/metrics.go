package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "percept_http_requests_total",
		Help: "Total number of HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "percept_http_request_duration_seconds",
		Help:    "HTTP request latency by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	nmsBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "percept_nms_batch_size",
		Help:    "Number of boxes per suppression request.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	nmsKeptBoxes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "percept_nms_kept_boxes",
		Help:    "Number of boxes surviving suppression per request.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	imageOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "percept_image_operations_total",
		Help: "Total number of image operations by kind.",
	}, []string{"operation"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "percept_ws_connections_active",
		Help: "Currently open websocket streaming connections.",
	})

	wsBatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "percept_ws_batches_total",
		Help: "Total number of box batches processed over websocket streams.",
	})

	rateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "percept_rate_limit_rejections_total",
		Help: "Requests rejected by the rate limiter.",
	})
)
