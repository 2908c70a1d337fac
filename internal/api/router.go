// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

// Package api provides the HTTP surface of the service: a Chi router
// over the recommendation engine with the standard response envelope.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/middleware"
)

// RouterConfig holds the router's middleware settings.
type RouterConfig struct {
	// RateLimiter limits API routes per client IP. Nil disables
	// rate limiting.
	RateLimiter *middleware.RateLimiter

	// CORSAllowedOrigins lists allowed origins. Empty means no
	// cross-origin access.
	CORSAllowedOrigins []string
}

// Router wires handlers and middleware into an http.Handler.
type Router struct {
	handler *Handler
	config  RouterConfig
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler, cfg RouterConfig) *Router {
	return &Router{handler: handler, config: cfg}
}

// Setup builds the route tree.
//
//	GET /healthz
//	GET /healthz/live
//	GET /healthz/ready
//	GET /metrics
//	GET /api/v1/users
//	GET /api/v1/products
//	GET /api/v1/recommendations/user/{userID}?k=N
//	GET /api/v1/recommendations/status
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	if len(router.config.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: router.config.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			MaxAge:         86400,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusNotFound, codeRouteNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed", nil)
	})

	// Health and metrics stay outside the rate limit so probes and
	// scrapes are never rejected.
	r.Route("/healthz", func(r chi.Router) {
		r.Get("/", router.handler.HealthLive)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if router.config.RateLimiter != nil {
			r.Use(router.config.RateLimiter.Middleware)
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/users", router.handler.ListUsers)
		r.Get("/products", router.handler.ListProducts)
		r.Get("/recommendations/user/{userID}", router.handler.GetRecommendations)
		r.Get("/recommendations/status", router.handler.GetStatus)
	})

	return r
}
