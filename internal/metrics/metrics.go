// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

// Package metrics exposes Prometheus instrumentation for the service:
// HTTP request latency and throughput, recommendation outcomes, and
// dataset snapshot builds. Scrape via the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation metrics.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total recommendation requests served, by scoring mode",
		},
		[]string{"mode"}, // "warm", "cold_start"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent scoring and ranking a single request",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	RecommendationResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_count",
			Help:    "Number of products returned per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	// Snapshot build metrics.
	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_build_duration_seconds",
			Help:    "Duration of dataset snapshot builds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotBuildErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_build_errors_total",
			Help: "Total number of failed snapshot builds",
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_version",
			Help: "Version of the currently served snapshot",
		},
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot build",
		},
	)

	SnapshotProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_products",
			Help: "Number of products in the current snapshot",
		},
	)

	SnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_users",
			Help: "Number of users in the current snapshot",
		},
	)

	SnapshotUnknownEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_unknown_events",
			Help: "Interactions in the current snapshot with an unrecognized event kind",
		},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one scored recommendation request.
func RecordRecommendation(mode string, results int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(mode).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationResultCount.Observe(float64(results))
}

// RecordSnapshotBuild records one snapshot build attempt.
func RecordSnapshotBuild(duration time.Duration, version int64, users, products, unknownEvents int, err error) {
	SnapshotBuildDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotBuildErrors.Inc()
		return
	}
	SnapshotVersion.Set(float64(version))
	SnapshotLastSuccess.Set(float64(time.Now().Unix()))
	SnapshotUsers.Set(float64(users))
	SnapshotProducts.Set(float64(products))
	SnapshotUnknownEvents.Set(float64(unknownEvents))
}
