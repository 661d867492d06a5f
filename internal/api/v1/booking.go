package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/api/dto"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/service"
	"github.com/wildpine/wildpine/internal/types"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(
	service service.BookingService,
	log *logger.Logger,
) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// @Summary Quote a booking
// @Description Preview the price, discount and payment schedule without creating a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param quote body dto.QuoteRequest true "Quote request"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bookings/quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Quote(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create a booking
// @Description Reserve a spot in a room, applying the best available discount
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Booking request"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a booking
// @Description Get a booking by ID, including its payment schedule and payments
// @Tags Bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("booking ID is required").
			WithHint("Booking ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List bookings
// @Description List bookings with optional filtering
// @Tags Bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.BookingFilter false "Filter"
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filter types.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListBookings(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a booking
// @Description Cancel a booking, void its open installments and notify the waitlist
// @Tags Bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Booking ID"
// @Param cancel body dto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CancelBooking(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reassign a booking's room
// @Description Move an active booking to another room of the same retreat, subject to availability
// @Tags Bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Booking ID"
// @Param assignment body dto.AssignRoomRequest true "Target room"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /bookings/{id}/assign-room [post]
func (h *BookingHandler) AssignRoom(c *gin.Context) {
	id := c.Param("id")
	var req dto.AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AssignRoom(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
