package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/api/dto"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/service"
)

type PolicyHandler struct {
	service service.PolicyService
	log     *logger.Logger
}

func NewPolicyHandler(
	service service.PolicyService,
	log *logger.Logger,
) *PolicyHandler {
	return &PolicyHandler{
		service: service,
		log:     log,
	}
}

// @Summary Upsert a policy
// @Description Create the policy under the slug or replace it, bumping the version
// @Tags Policies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param policy body dto.UpsertPolicyRequest true "Policy content"
// @Success 200 {object} dto.PolicyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /policies [put]
func (h *PolicyHandler) UpsertPolicy(c *gin.Context) {
	var req dto.UpsertPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpsertPolicy(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a policy
// @Description Get the current version of a policy by slug
// @Tags Policies
// @Accept json
// @Produce json
// @Param slug path string true "Policy slug"
// @Success 200 {object} dto.PolicyResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /policies/{slug} [get]
func (h *PolicyHandler) GetPolicyBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.Error(ierr.NewError("slug is required").
			WithHint("Policy slug is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPolicyBySlug(c.Request.Context(), slug)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List policies
// @Description List the current version of every policy
// @Tags Policies
// @Accept json
// @Produce json
// @Success 200 {array} dto.PolicyResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /policies [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	resp, err := h.service.ListPolicies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
