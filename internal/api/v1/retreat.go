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

type RetreatHandler struct {
	service     service.RetreatService
	roomService service.RoomService
	log         *logger.Logger
}

func NewRetreatHandler(
	service service.RetreatService,
	roomService service.RoomService,
	log *logger.Logger,
) *RetreatHandler {
	return &RetreatHandler{
		service:     service,
		roomService: roomService,
		log:         log,
	}
}

// @Summary Create a new retreat
// @Description Create a new retreat with the specified configuration
// @Tags Retreats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param retreat body dto.CreateRetreatRequest true "Retreat configuration"
// @Success 201 {object} dto.RetreatResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats [post]
func (h *RetreatHandler) CreateRetreat(c *gin.Context) {
	var req dto.CreateRetreatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateRetreat(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a retreat
// @Description Get a retreat by ID, including its rooms and live availability
// @Tags Retreats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Retreat ID"
// @Success 200 {object} dto.RetreatResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats/{id} [get]
func (h *RetreatHandler) GetRetreat(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("retreat ID is required").
			WithHint("Retreat ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetRetreat(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a retreat by slug
// @Description Get a published retreat by its URL slug
// @Tags Retreats
// @Accept json
// @Produce json
// @Param slug path string true "Retreat slug"
// @Param locale query string false "Serve translated content" example(de)
// @Success 200 {object} dto.RetreatResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats/slug/{slug} [get]
func (h *RetreatHandler) GetRetreatBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.Error(ierr.NewError("slug is required").
			WithHint("Retreat slug is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetRetreatBySlug(c.Request.Context(), slug, c.Query("locale"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List retreats
// @Description List retreats with optional filtering
// @Tags Retreats
// @Accept json
// @Produce json
// @Param filter query types.RetreatFilter false "Filter"
// @Success 200 {object} dto.ListRetreatsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats [get]
func (h *RetreatHandler) ListRetreats(c *gin.Context) {
	var filter types.RetreatFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRetreats(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a retreat
// @Description Update a retreat by ID
// @Tags Retreats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Retreat ID"
// @Param retreat body dto.UpdateRetreatRequest true "Retreat update"
// @Success 200 {object} dto.RetreatResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats/{id} [put]
func (h *RetreatHandler) UpdateRetreat(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateRetreatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateRetreat(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Trash a retreat
// @Description Move a retreat to the trash, it stays recoverable for the retention period
// @Tags Retreats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Retreat ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats/{id} [delete]
func (h *RetreatHandler) TrashRetreat(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.TrashRetreat(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "retreat trashed successfully"})
}

// @Summary Restore a retreat
// @Description Restore a trashed retreat
// @Tags Retreats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Retreat ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats/{id}/restore [post]
func (h *RetreatHandler) RestoreRetreat(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.RestoreRetreat(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "retreat restored successfully"})
}

// @Summary Add a room to a retreat
// @Description Create a room type under the retreat
// @Tags Retreats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Retreat ID"
// @Param room body dto.CreateRoomRequest true "Room configuration"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats/{id}/rooms [post]
func (h *RetreatHandler) CreateRoom(c *gin.Context) {
	retreatID := c.Param("id")
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.roomService.CreateRoom(c.Request.Context(), retreatID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List rooms of a retreat
// @Description List the retreat's rooms with live availability
// @Tags Retreats
// @Accept json
// @Produce json
// @Param id path string true "Retreat ID"
// @Success 200 {array} dto.RoomResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /retreats/{id}/rooms [get]
func (h *RetreatHandler) ListRooms(c *gin.Context) {
	retreatID := c.Param("id")
	resp, err := h.roomService.ListRooms(c.Request.Context(), retreatID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a room
// @Description Get a room by ID
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RetreatHandler) GetRoom(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a room
// @Description Update a room by ID
// @Tags Rooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Room ID"
// @Param room body dto.UpdateRoomRequest true "Room update"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rooms/{id} [put]
func (h *RetreatHandler) UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.roomService.UpdateRoom(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a room
// @Description Delete a room that has no active bookings
// @Tags Rooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /rooms/{id} [delete]
func (h *RetreatHandler) DeleteRoom(c *gin.Context) {
	id := c.Param("id")
	if err := h.roomService.DeleteRoom(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deleted successfully"})
}
