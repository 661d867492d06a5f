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

type WaitlistHandler struct {
	service service.WaitlistService
	log     *logger.Logger
}

func NewWaitlistHandler(
	service service.WaitlistService,
	log *logger.Logger,
) *WaitlistHandler {
	return &WaitlistHandler{
		service: service,
		log:     log,
	}
}

// @Summary Join a waitlist
// @Description Join the waitlist for a sold-out retreat or a specific room
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param entry body dto.JoinWaitlistRequest true "Waitlist entry"
// @Success 201 {object} dto.WaitlistEntryResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /waitlist [post]
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req dto.JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Join(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List waitlist entries
// @Description List waitlist entries with optional filtering
// @Tags Waitlist
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.WaitlistFilter false "Filter"
// @Success 200 {object} dto.ListWaitlistResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /waitlist [get]
func (h *WaitlistHandler) ListEntries(c *gin.Context) {
	var filter types.WaitlistFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListEntries(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Mark a waitlist entry converted
// @Description Record that a notified customer booked the freed spot
// @Tags Waitlist
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Waitlist entry ID"
// @Success 200 {object} dto.WaitlistEntryResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /waitlist/{id}/convert [post]
func (h *WaitlistHandler) MarkConverted(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.service.MarkConverted(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
