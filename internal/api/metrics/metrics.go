// Package metrics defines the custom Prometheus metrics for the uwgen media
// API. It is the single source of truth for metric names, labels, and help
// strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "uwgen"

// SigninsTotal counts signin attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "inactive_account"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by outcome.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the auth gateway.
// Label:
//   - reason: "missing", "malformed", "expired", "invalid", or "unknown_user"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth gateway.",
	},
	[]string{"reason"},
)

// ImagesStoredTotal counts artifacts persisted by the generation pipeline.
// Label:
//   - category: "gen" or "edit"
var ImagesStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_stored_total",
		Help:      "Total number of generated or edited images persisted.",
	},
	[]string{"category"},
)

// ArtifactsServedTotal counts artifact files served back to users.
// Label:
//   - category: "gen" or "edit"
var ArtifactsServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artifacts_served_total",
		Help:      "Total number of artifact files served, by category.",
	},
	[]string{"category"},
)

// ImageRequestDuration measures end-to-end latency of generation and edit
// requests, dominated by the external provider call.
// Label:
//   - category: "gen" or "edit"
var ImageRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_request_duration_seconds",
		Help:      "Duration of image generation/edit requests end to end.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"category"},
)
