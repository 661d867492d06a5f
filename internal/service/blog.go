package service

import (
	"bytes"
	"context"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/cache"
	domainTranslation "github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// BlogService manages blog posts, rendering markdown bodies to HTML
type BlogService interface {
	CreatePost(ctx context.Context, req *dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error)
	GetPost(ctx context.Context, id string) (*dto.BlogPostResponse, error)
	// GetPostBySlug serves the public read. A non-empty locale overlays
	// stored translations, falling back to the source language.
	GetPostBySlug(ctx context.Context, slug, locale string) (*dto.BlogPostResponse, error)
	UpdatePost(ctx context.Context, id string, req *dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error)
	ListPosts(ctx context.Context, filter *types.BlogPostFilter) (*dto.ListBlogPostsResponse, error)

	TrashPost(ctx context.Context, id string) error
	RestorePost(ctx context.Context, id string) error
}

type blogService struct {
	ServiceParams
}

func NewBlogService(params ServiceParams) BlogService {
	return &blogService{ServiceParams: params}
}

func renderMarkdown(body string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(body), &buf); err != nil {
		return "", ierr.WithError(err).
			WithHint("Markdown body could not be rendered").
			Mark(ierr.ErrValidation)
	}
	return buf.String(), nil
}

func (s *blogService) CreatePost(ctx context.Context, req *dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToBlogPost(ctx)
	if p.Slug == "" {
		p.Slug = slugify(p.Title)
	}

	html, err := renderMarkdown(p.Body)
	if err != nil {
		return nil, err
	}
	p.BodyHTML = html

	if err := s.BlogPostRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created blog post", "post_id", p.ID, "slug", p.Slug)
	return &dto.BlogPostResponse{BlogPost: p}, nil
}

func (s *blogService) GetPost(ctx context.Context, id string) (*dto.BlogPostResponse, error) {
	p, err := s.BlogPostRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BlogPostResponse{BlogPost: p}, nil
}

func (s *blogService) GetPostBySlug(ctx context.Context, slug, locale string) (*dto.BlogPostResponse, error) {
	cacheKey := cache.GenerateKey(cache.PrefixBlogPost, slug)
	if v, ok := s.Cache.Get(ctx, cacheKey); ok {
		if resp, ok := v.(*dto.BlogPostResponse); ok {
			return s.localize(ctx, resp, locale), nil
		}
	}

	p, err := s.BlogPostRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := &dto.BlogPostResponse{BlogPost: p}
	s.Cache.Set(ctx, cacheKey, resp, cache.DefaultExpiration)
	return s.localize(ctx, resp, locale), nil
}

// localize overlays stored translations onto a copy of the response and
// re-renders the body when it was translated. Missing translations fall back
// to the source language. The cache holds the source response, so the
// overlay never mutates it.
func (s *blogService) localize(ctx context.Context, resp *dto.BlogPostResponse, locale string) *dto.BlogPostResponse {
	if locale == "" {
		return resp
	}

	translations, err := s.TranslationRepo.GetForEntity(ctx, domainTranslation.EntityTypeBlogPost, resp.BlogPost.ID, locale)
	if err != nil {
		s.Logger.Warnw("failed to load translations", "error", err, "post_id", resp.BlogPost.ID, "locale", locale)
		return resp
	}
	if len(translations) == 0 {
		return resp
	}

	localized := *resp.BlogPost
	bodyTranslated := false
	for _, t := range translations {
		switch t.Field {
		case "title":
			localized.Title = t.Value
		case "excerpt":
			localized.Excerpt = t.Value
		case "body":
			localized.Body = t.Value
			bodyTranslated = true
		}
	}
	if bodyTranslated {
		if html, err := renderMarkdown(localized.Body); err == nil {
			localized.BodyHTML = html
		} else {
			s.Logger.Warnw("failed to render translated body", "error", err, "post_id", localized.ID, "locale", locale)
		}
	}
	return &dto.BlogPostResponse{BlogPost: &localized}
}

func (s *blogService) UpdatePost(ctx context.Context, id string, req *dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error) {
	p, err := s.BlogPostRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsTrashed() {
		return nil, ierr.NewError("post is in the trash").
			WithHint("Restore the post before editing it").
			Mark(ierr.ErrInvalidOperation)
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		p.Body = *req.Body
		html, err := renderMarkdown(p.Body)
		if err != nil {
			return nil, err
		}
		p.BodyHTML = html
	}
	if req.CoverImageURL != nil {
		p.CoverImageURL = *req.CoverImageURL
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	if req.PublishedAt != nil {
		p.PublishedAt = req.PublishedAt
	}
	p.Touch(ctx)

	if err := s.BlogPostRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixBlogPost, p.Slug))
	return &dto.BlogPostResponse{BlogPost: p}, nil
}

func (s *blogService) ListPosts(ctx context.Context, filter *types.BlogPostFilter) (*dto.ListBlogPostsResponse, error) {
	if filter == nil {
		filter = &types.BlogPostFilter{}
	}

	posts, err := s.BlogPostRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.BlogPostRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, &dto.BlogPostResponse{BlogPost: p})
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *blogService) TrashPost(ctx context.Context, id string) error {
	p, err := s.BlogPostRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.IsTrashed() {
		return ierr.NewError("post is already trashed").
			WithHint("The post is already in the trash").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := s.BlogPostRepo.Trash(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixBlogPost, p.Slug))
	s.Logger.Infow("trashed blog post", "post_id", id)
	return nil
}

func (s *blogService) RestorePost(ctx context.Context, id string) error {
	p, err := s.BlogPostRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsTrashed() {
		return ierr.NewError("post is not trashed").
			WithHint("Only trashed posts can be restored").
			Mark(ierr.ErrInvalidOperation)
	}
	return s.BlogPostRepo.Restore(ctx, id)
}
