package testutil

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/wildpine/wildpine/internal/domain/blogpost"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// InMemoryBlogPostStore implements blogpost.Repository
type InMemoryBlogPostStore struct {
	*InMemoryStore[*blogpost.BlogPost]
}

// NewInMemoryBlogPostStore creates a new in-memory blog post repository
func NewInMemoryBlogPostStore() *InMemoryBlogPostStore {
	return &InMemoryBlogPostStore{
		InMemoryStore: NewInMemoryStore[*blogpost.BlogPost](),
	}
}

func (m *InMemoryBlogPostStore) Create(ctx context.Context, p *blogpost.BlogPost) error {
	if p == nil {
		return ierr.NewError("post cannot be nil").
			WithHint("Post cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Create(ctx, p.ID, p)
}

func (m *InMemoryBlogPostStore) Get(ctx context.Context, id string) (*blogpost.BlogPost, error) {
	return m.InMemoryStore.Get(ctx, id)
}

func (m *InMemoryBlogPostStore) GetBySlug(ctx context.Context, slug string) (*blogpost.BlogPost, error) {
	all, _ := m.InMemoryStore.List(ctx, nil, nil, nil)
	for _, p := range all {
		if p.Slug == slug && p.Status != types.StatusDeleted {
			return p, nil
		}
	}
	return nil, ierr.NewError("post not found").
		WithHintf("Post with slug %s was not found", slug).
		Mark(ierr.ErrNotFound)
}

func (m *InMemoryBlogPostStore) Update(ctx context.Context, p *blogpost.BlogPost) error {
	if p == nil {
		return ierr.NewError("post cannot be nil").
			WithHint("Post cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return m.InMemoryStore.Update(ctx, p.ID, p)
}

func blogPostFilterFn(ctx context.Context, p *blogpost.BlogPost, filter interface{}) bool {
	f, ok := filter.(*types.BlogPostFilter)
	if !ok || f == nil {
		return true
	}
	if p.Status == types.StatusDeleted {
		return false
	}
	if f.Trashed != p.IsTrashed() {
		return false
	}
	if f.PublishedOnly && !p.IsPublic(time.Now().UTC()) {
		return false
	}
	if f.Tag != "" && !lo.Contains(p.Tags, f.Tag) {
		return false
	}
	return true
}

func (m *InMemoryBlogPostStore) List(ctx context.Context, filter *types.BlogPostFilter) ([]*blogpost.BlogPost, error) {
	items, err := m.InMemoryStore.List(ctx, filter, blogPostFilterFn, func(i, j *blogpost.BlogPost) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return paginate(items, filter.GetLimit(), filter.GetOffset()), nil
}

func (m *InMemoryBlogPostStore) Count(ctx context.Context, filter *types.BlogPostFilter) (int, error) {
	return m.InMemoryStore.Count(ctx, filter, blogPostFilterFn)
}

func (m *InMemoryBlogPostStore) Trash(ctx context.Context, id string, at time.Time) error {
	p, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.IsTrashed() {
		return ierr.NewError("post already trashed").
			WithHint("Post is already in the trash").
			Mark(ierr.ErrInvalidOperation)
	}
	p.DeletedAt = &at
	return m.InMemoryStore.Update(ctx, id, p)
}

func (m *InMemoryBlogPostStore) Restore(ctx context.Context, id string) error {
	p, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsTrashed() {
		return ierr.NewError("post not trashed").
			WithHint("Post is not in the trash").
			Mark(ierr.ErrInvalidOperation)
	}
	p.DeletedAt = nil
	return m.InMemoryStore.Update(ctx, id, p)
}

func (m *InMemoryBlogPostStore) ListTrashedBefore(ctx context.Context, cutoff time.Time) ([]*blogpost.BlogPost, error) {
	return m.InMemoryStore.List(ctx, nil, func(ctx context.Context, p *blogpost.BlogPost, _ interface{}) bool {
		return p.DeletedAt != nil && !p.DeletedAt.After(cutoff)
	}, nil)
}

func (m *InMemoryBlogPostStore) Purge(ctx context.Context, id string) error {
	p, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsTrashed() {
		return ierr.NewError("post not trashed").
			WithHint("Only trashed posts can be purged").
			Mark(ierr.ErrInvalidOperation)
	}
	return m.InMemoryStore.Delete(ctx, id)
}
