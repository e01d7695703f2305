// Package controllers holds the HTTP handlers of the JSON API. Handlers decode
// and validate input, take the caller from the auth middleware and map service
// errors onto the response envelope.
package controllers

import (
	"net/http"

	"eventmanager/internal/delivery/http/helpers"
	"eventmanager/internal/delivery/http/middleware"
	"eventmanager/internal/domain"
)

// actor returns the authenticated caller or writes a 401.
func actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return domain.Actor{}, false
	}
	return a, true
}

// RemovedResponse reports whether a delete call removed anything.
type RemovedResponse struct {
	Removed bool `json:"removed"`
}

// HealthResponse is the data payload of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data: {status: ok}"
// @Router /health [get]
func Health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
