package controllers

import (
	"log/slog"
	"net/http"

	"eventmanager/internal/delivery/http/helpers"
	"eventmanager/internal/domain"
)

// VenueRequest is the request body for POST /venues and PUT /venues/{venueID}.
type VenueRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// VenueSuccessResponse is the success response envelope for a single venue.
type VenueSuccessResponse struct {
	Data  *domain.Venue     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AvailabilityResponse is the data payload of GET /venues/{venueID}/availability.
type AvailabilityResponse struct {
	VenueID   string `json:"venue_id"`
	Available bool   `json:"available"`
}

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{Logger: logger, Service: svc}
}

// ListVenues godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Success 200 {object} helpers.APIResponse "data: []Venue"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.ListVenues(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// GetVenue godoc
// @Summary Get a venue
// @Tags venues
// @Produce json
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := helpers.PathID(w, r, "venueID")
	if !ok {
		return
	}
	venue, err := c.Service.GetVenue(r.Context(), venueID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// CheckAvailability godoc
// @Summary Check whether a venue is free
// @Description Reports whether [start, end] overlaps no booking at the venue. Without end the request reserves only its start instant. exclude_event_id ignores that event's own booking.
// @Tags venues
// @Produce json
// @Param venueID path string true "Venue ID (UUID)"
// @Param start query string true "Start (RFC 3339)"
// @Param end query string false "End (RFC 3339)"
// @Param exclude_event_id query string false "Event to ignore"
// @Success 200 {object} helpers.APIResponse "data: AvailabilityResponse"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID}/availability [get]
func (c *VenueController) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	venueID, ok := helpers.PathID(w, r, "venueID")
	if !ok {
		return
	}
	start, err := helpers.QueryTime(r, "start")
	if err != nil || start == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start must be an RFC 3339 timestamp")
		return
	}
	end, err := helpers.QueryTime(r, "end")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end must be an RFC 3339 timestamp")
		return
	}
	available, err := c.Service.CheckAvailability(r.Context(), venueID, *start, end, r.URL.Query().Get("exclude_event_id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailabilityResponse{VenueID: venueID, Available: available})
}

// CreateVenue godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body controllers.VenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.CreateVenue(r.Context(), a, req.Name, req.Address, req.Capacity)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param venue body controllers.VenueRequest true "Venue data"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{venueID} [put]
func (c *VenueController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	venueID, ok := helpers.PathID(w, r, "venueID")
	if !ok {
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.UpdateVenue(r.Context(), a, venueID, req.Name, req.Address, req.Capacity)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}
