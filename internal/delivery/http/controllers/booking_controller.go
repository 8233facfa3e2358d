package controllers

import (
	"log/slog"
	"net/http"

	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{eventID}/bookings.
type CreateBookingRequest struct {
	Email string `json:"email" validate:"required,max=254"`
}

// Validate implements Validator. Email syntax is checked by the booking service.
func (b CreateBookingRequest) Validate() []string {
	return helpers.ValidateStruct(b)
}

// BookingSuccessResponse is the success response envelope for POST /events/{eventID}/bookings (201).
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListBookingsResponse is the data payload for GET /events/{eventID}/bookings (200).
type ListBookingsResponse struct {
	Items      []*domain.Booking      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListBookingsSuccessResponse is the success response envelope for GET /events/{eventID}/bookings (200).
type ListBookingsSuccessResponse struct {
	Data  ListBookingsResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Service: svc}
}

// CreateBooking godoc
// @Summary Book an event
// @Description Records one booking per event and email. The email is trimmed and lowercased before storage.
// @Tags bookings
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param booking body CreateBookingRequest true "Attendee email"
// @Success 201 {object} controllers.BookingSuccessResponse "data contains the booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid email)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event does not exist)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already booked)"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), eventID, req.Email)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// ListBookings godoc
// @Summary List bookings for an event
// @Description Returns the event's bookings newest first. Use page and page_size query params.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListBookingsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	params := helpers.ParsePagination(r)
	bookings, total, err := c.Service.ListBookingsByEvent(r.Context(), eventID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListBookingsResponse{Items: bookings, Pagination: meta})
}
