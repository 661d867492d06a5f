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

type BlogHandler struct {
	service service.BlogService
	log     *logger.Logger
}

func NewBlogHandler(
	service service.BlogService,
	log *logger.Logger,
) *BlogHandler {
	return &BlogHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a blog post
// @Description Create a blog post, the markdown body is rendered to HTML on write
// @Tags Blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param post body dto.CreateBlogPostRequest true "Post content"
// @Success 201 {object} dto.BlogPostResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /blog [post]
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req dto.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a blog post
// @Description Get a blog post by ID
// @Tags Blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.BlogPostResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /blog/{id} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a blog post by slug
// @Description Get a published blog post by its URL slug
// @Tags Blog
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param locale query string false "Serve translated content" example(de)
// @Success 200 {object} dto.BlogPostResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /blog/slug/{slug} [get]
func (h *BlogHandler) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")
	resp, err := h.service.GetPostBySlug(c.Request.Context(), slug, c.Query("locale"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a blog post
// @Description Update a blog post, the body is re-rendered when it changes
// @Tags Blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Param post body dto.UpdateBlogPostRequest true "Post update"
// @Success 200 {object} dto.BlogPostResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /blog/{id} [put]
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePost(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List blog posts
// @Description List blog posts with optional filtering
// @Tags Blog
// @Accept json
// @Produce json
// @Param filter query types.BlogPostFilter false "Filter"
// @Success 200 {object} dto.ListBlogPostsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /blog [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	var filter types.BlogPostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPosts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Trash a blog post
// @Description Move a blog post to the trash, it stays recoverable for the retention period
// @Tags Blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /blog/{id} [delete]
func (h *BlogHandler) TrashPost(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.TrashPost(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post trashed successfully"})
}

// @Summary Restore a blog post
// @Description Restore a trashed blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /blog/{id}/restore [post]
func (h *BlogHandler) RestorePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.RestorePost(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post restored successfully"})
}
