package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/translation"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/testutil"
	"github.com/wildpine/wildpine/internal/types"
)

type BlogServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BlogService
}

func TestBlogService(t *testing.T) {
	suite.Run(t, new(BlogServiceSuite))
}

func (s *BlogServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBlogService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		BlogPostRepo:    s.GetStores().BlogPostRepo,
		TranslationRepo: s.GetStores().TranslationRepo,
		Cache:           s.GetCache(),
	})
}

func (s *BlogServiceSuite) createPost(title string, publishedAt *time.Time, tags ...string) *dto.BlogPostResponse {
	resp, err := s.service.CreatePost(s.GetContext(), &dto.CreateBlogPostRequest{
		Title:       title,
		Body:        "Plain paragraph.",
		Tags:        tags,
		PublishedAt: publishedAt,
	})
	s.NoError(err)
	return resp
}

func (s *BlogServiceSuite) TestCreatePostRendersMarkdown() {
	resp, err := s.service.CreatePost(s.GetContext(), &dto.CreateBlogPostRequest{
		Title: "Packing for a Silent Retreat",
		Body:  "Bring **warm layers** and a journal.",
	})
	s.NoError(err)
	s.Equal("packing-for-a-silent-retreat", resp.Slug)
	s.Contains(resp.BodyHTML, "<strong>warm layers</strong>")
}

func (s *BlogServiceSuite) TestUpdatePostRerendersBody() {
	created := s.createPost("Original Title", nil)

	body := "Now with *emphasis*."
	resp, err := s.service.UpdatePost(s.GetContext(), created.ID, &dto.UpdateBlogPostRequest{Body: &body})
	s.NoError(err)
	s.Contains(resp.BodyHTML, "<em>emphasis</em>")
}

func (s *BlogServiceSuite) TestListPostsPublishedOnly() {
	past := s.GetNow().Add(-time.Hour)
	future := s.GetNow().AddDate(0, 0, 7)

	s.createPost("Live Post", &past)
	s.createPost("Scheduled Post", &future)
	s.createPost("Draft Post", nil)

	resp, err := s.service.ListPosts(s.GetContext(), &types.BlogPostFilter{PublishedOnly: true})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Live Post", resp.Items[0].Title)
}

func (s *BlogServiceSuite) TestListPostsByTag() {
	past := s.GetNow().Add(-time.Hour)
	s.createPost("Yoga Basics", &past, "yoga", "beginners")
	s.createPost("Trail Food", &past, "hiking")

	resp, err := s.service.ListPosts(s.GetContext(), &types.BlogPostFilter{Tag: "yoga"})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Yoga Basics", resp.Items[0].Title)
}

func (s *BlogServiceSuite) TestTrashAndRestorePost() {
	created := s.createPost("Short Lived", nil)

	s.NoError(s.service.TrashPost(s.GetContext(), created.ID))

	resp, err := s.service.ListPosts(s.GetContext(), &types.BlogPostFilter{})
	s.NoError(err)
	s.Equal(0, resp.Pagination.Total)

	resp, err = s.service.ListPosts(s.GetContext(), &types.BlogPostFilter{Trashed: true})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)

	err = s.service.TrashPost(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	s.NoError(s.service.RestorePost(s.GetContext(), created.ID))

	resp, err = s.service.ListPosts(s.GetContext(), &types.BlogPostFilter{})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
}

func (s *BlogServiceSuite) TestUpdateTrashedPostRejected() {
	created := s.createPost("Untouchable", nil)
	s.NoError(s.service.TrashPost(s.GetContext(), created.ID))

	title := "New Title"
	_, err := s.service.UpdatePost(s.GetContext(), created.ID, &dto.UpdateBlogPostRequest{Title: &title})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BlogServiceSuite) TestGetPostBySlug() {
	created := s.createPost("Findable Post", nil)

	resp, err := s.service.GetPostBySlug(s.GetContext(), created.Slug, "")
	s.NoError(err)
	s.Equal(created.ID, resp.ID)

	_, err = s.service.GetPostBySlug(s.GetContext(), "no-such-post", "")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BlogServiceSuite) TestGetPostBySlugLocalized() {
	created := s.createPost("Hiking Snacks", nil)

	s.NoError(s.GetStores().TranslationRepo.Upsert(s.GetContext(), &translation.Translation{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSLATION),
		EntityType: translation.EntityTypeBlogPost,
		EntityID:   created.ID,
		Locale:     "de",
		Field:      "body",
		Value:      "Nimm **viel Wasser** mit.",
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.service.GetPostBySlug(s.GetContext(), created.Slug, "de")
	s.NoError(err)
	s.Equal("Nimm **viel Wasser** mit.", resp.Body)
	s.Contains(resp.BodyHTML, "<strong>viel Wasser</strong>")
	// Untranslated fields keep the source language
	s.Equal("Hiking Snacks", resp.Title)

	// The cached source response stays untranslated
	resp, err = s.service.GetPostBySlug(s.GetContext(), created.Slug, "")
	s.NoError(err)
	s.Equal("Plain paragraph.", resp.Body)
}
