package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/service"
)

type TranslationHandler struct {
	service service.TranslationService
	log     *logger.Logger
}

func NewTranslationHandler(
	service service.TranslationService,
	log *logger.Logger,
) *TranslationHandler {
	return &TranslationHandler{
		service: service,
		log:     log,
	}
}

// @Summary Translate an entity
// @Description Machine-translate a retreat or blog post into the target locale and store the result
// @Tags Translations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param translation body dto.TranslateEntityRequest true "Translation request"
// @Success 200 {object} dto.TranslationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /translations [post]
func (h *TranslationHandler) TranslateEntity(c *gin.Context) {
	var req dto.TranslateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.TranslateEntity(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get stored translations
// @Description Get the stored translations of an entity for a locale
// @Tags Translations
// @Accept json
// @Produce json
// @Param entity_type path string true "Entity type" Enums(retreat, blog_post)
// @Param entity_id path string true "Entity ID"
// @Param locale query string true "Target locale" example(de)
// @Success 200 {object} dto.TranslationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /translations/{entity_type}/{entity_id} [get]
func (h *TranslationHandler) GetTranslations(c *gin.Context) {
	entityType := translation.EntityType(c.Param("entity_type"))
	entityID := c.Param("entity_id")
	locale := c.Query("locale")
	if locale == "" {
		c.Error(ierr.NewError("locale is required").
			WithHint("Locale query parameter is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetTranslations(c.Request.Context(), entityType, entityID, locale)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
