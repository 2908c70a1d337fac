// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/explain"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/logging"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/metrics"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/models"
	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
)

// Handler implements the HTTP endpoints over the recommendation engine.
type Handler struct {
	engine    *recommend.Engine
	explainer *explain.Generator
	maxK      int
}

// NewHandler creates the endpoint handler.
func NewHandler(engine *recommend.Engine, explainer *explain.Generator, maxK int) *Handler {
	return &Handler{engine: engine, explainer: explainer, maxK: maxK}
}

// usersPayload is the data body for the user listing.
type usersPayload struct {
	Total int              `json:"total"`
	Users []recommend.User `json:"users"`
}

// ListUsers serves GET /api/v1/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   usersPayload{Total: len(snap.UserList), Users: snap.UserList},
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			SnapshotVersion: int64(snap.Version),
		},
	})
}

// productsPayload is the data body for the product listing.
type productsPayload struct {
	Total    int                 `json:"total"`
	Products []recommend.Product `json:"products"`
}

// ListProducts serves GET /api/v1/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   productsPayload{Total: len(snap.Products), Products: snap.Products},
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			SnapshotVersion: int64(snap.Version),
		},
	})
}

// recommendationPayload wraps the engine response with the behavior
// summary used by storefront UIs.
type recommendationPayload struct {
	*recommend.Response
	BehaviorSummary string `json:"behavior_summary"`
}

// recommendationParams carries the validated request parameters. The
// optional k query parameter is checked by hand in the handler because
// its zero value means "use the configured default", which struct tags
// cannot distinguish from an explicit k=0.
type recommendationParams struct {
	UserID int `validate:"required,gt=0"`
}

// GetRecommendations serves GET /api/v1/recommendations/user/{userID}.
// The optional k query parameter bounds the result size; it defaults
// to the configured value and is capped at max_k.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError,
			"user ID must be an integer", nil)
		return
	}

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, codeValidationError,
				"k must be an integer", nil)
			return
		}
		if k < 1 {
			respondError(w, http.StatusBadRequest, codeValidationError,
				"k must be at least 1", nil)
			return
		}
		if k > h.maxK {
			respondError(w, http.StatusBadRequest, codeValidationError,
				"k exceeds the maximum of "+strconv.Itoa(h.maxK),
				map[string]interface{}{"max_k": h.maxK})
			return
		}
	}

	params := recommendationParams{UserID: userID}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	if !snap.UserExists(userID) {
		respondError(w, http.StatusNotFound, codeNotFound,
			"user "+strconv.Itoa(userID)+" not found", nil)
		return
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), userID, k)
	if err != nil {
		if errors.Is(err, recommend.ErrNotReady) {
			respondError(w, http.StatusServiceUnavailable, codeNotReady,
				"no dataset snapshot loaded yet", nil)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int("user_id", userID).
			Msg("Recommendation failed")
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"recommendation failed", nil)
		return
	}

	for i := range resp.Items {
		resp.Items[i].Reason = h.explainer.Reason(snap, userID, resp.Items[i], resp.Mode)
	}
	metrics.RecordRecommendation(string(resp.Mode), len(resp.Items), time.Since(start))

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: recommendationPayload{
			Response:        resp,
			BehaviorSummary: h.explainer.BehaviorSummary(snap, userID),
		},
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			QueryTimeMS:     time.Since(start).Milliseconds(),
			SnapshotVersion: int64(resp.SnapshotVersion),
		},
	})
}

// GetStatus serves GET /api/v1/recommendations/status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := h.engine.Status()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			SnapshotVersion: int64(status.SnapshotVersion),
		},
	})
}

// HealthLive serves GET /healthz/live; it answers 200 whenever the
// process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady serves GET /healthz/ready; it answers 503 until the
// first snapshot has been built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Ready() {
		respondError(w, http.StatusServiceUnavailable, codeNotReady,
			"no dataset snapshot loaded yet", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// snapshot fetches the current snapshot, answering 503 when none is
// loaded yet.
func (h *Handler) snapshot(w http.ResponseWriter) (*recommend.Snapshot, bool) {
	snap := h.engine.Snapshot()
	if snap == nil {
		respondError(w, http.StatusServiceUnavailable, codeNotReady,
			"no dataset snapshot loaded yet", nil)
		return nil, false
	}
	return snap, true
}
