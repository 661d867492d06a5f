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

type NewsletterHandler struct {
	service service.NewsletterService
	log     *logger.Logger
}

func NewNewsletterHandler(
	service service.NewsletterService,
	log *logger.Logger,
) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		log:     log,
	}
}

// @Summary Subscribe to the newsletter
// @Description Sign up for the newsletter, a confirmation email completes the opt-in
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param subscription body dto.SubscribeRequest true "Signup"
// @Success 201 {object} dto.SubscriberResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Subscribe(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Confirm a subscription
// @Description Complete the double opt-in using the token from the confirmation email
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param token query string true "Confirmation token"
// @Success 200 {object} dto.SubscriberResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /newsletter/confirm [get]
func (h *NewsletterHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmSubscriptionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Confirmation token is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Confirm(c.Request.Context(), req.Token)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Unsubscribe from the newsletter
// @Description Unsubscribe using the token from the email footer, repeat calls are harmless
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param token query string true "Unsubscribe token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /newsletter/unsubscribe [get]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req dto.UnsubscribeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Unsubscribe token is required").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), req.Token); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed successfully"})
}

// @Summary List subscribers
// @Description List newsletter subscribers with optional filtering
// @Tags Newsletter
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.SubscriberFilter false "Filter"
// @Success 200 {object} dto.ListSubscribersResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /newsletter/subscribers [get]
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	var filter types.SubscriberFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListSubscribers(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Send a campaign
// @Description Send an email to every confirmed subscriber
// @Tags Newsletter
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param campaign body dto.SendCampaignRequest true "Campaign content"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /newsletter/campaigns [post]
func (h *NewsletterHandler) SendCampaign(c *gin.Context) {
	var req dto.SendCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SendCampaign(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
