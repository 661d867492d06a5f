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

type PromoCodeHandler struct {
	service service.PromoCodeService
	log     *logger.Logger
}

func NewPromoCodeHandler(
	service service.PromoCodeService,
	log *logger.Logger,
) *PromoCodeHandler {
	return &PromoCodeHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a promo code
// @Description Create a promo code, the code is generated when not provided
// @Tags PromoCodes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param promo_code body dto.CreatePromoCodeRequest true "Promo code configuration"
// @Success 201 {object} dto.PromoCodeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promo-codes [post]
func (h *PromoCodeHandler) CreatePromoCode(c *gin.Context) {
	var req dto.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePromoCode(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a promo code
// @Description Get a promo code by ID
// @Tags PromoCodes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Promo code ID"
// @Success 200 {object} dto.PromoCodeResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promo-codes/{id} [get]
func (h *PromoCodeHandler) GetPromoCode(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.service.GetPromoCode(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a promo code
// @Description Update a promo code's limits, validity window or status
// @Tags PromoCodes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Promo code ID"
// @Param promo_code body dto.UpdatePromoCodeRequest true "Promo code update"
// @Success 200 {object} dto.PromoCodeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promo-codes/{id} [put]
func (h *PromoCodeHandler) UpdatePromoCode(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePromoCode(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a promo code
// @Description Archive a promo code so it can no longer be redeemed
// @Tags PromoCodes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Promo code ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promo-codes/{id} [delete]
func (h *PromoCodeHandler) DeletePromoCode(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeletePromoCode(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "promo code deleted successfully"})
}

// @Summary List promo codes
// @Description List promo codes with optional filtering
// @Tags PromoCodes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.PromoCodeFilter false "Filter"
// @Success 200 {object} dto.ListPromoCodesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promo-codes [get]
func (h *PromoCodeHandler) ListPromoCodes(c *gin.Context) {
	var filter types.PromoCodeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPromoCodes(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
