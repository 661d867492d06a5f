package service

import (
	"context"
	"time"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/cache"
	domainPolicy "github.com/wildpine/wildpine/internal/domain/policy"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/types"
)

// PolicyService manages versioned content pages
type PolicyService interface {
	// UpsertPolicy creates the policy under the slug or replaces it,
	// bumping the version
	UpsertPolicy(ctx context.Context, req *dto.UpsertPolicyRequest) (*dto.PolicyResponse, error)
	GetPolicyBySlug(ctx context.Context, slug string) (*dto.PolicyResponse, error)
	ListPolicies(ctx context.Context) ([]*dto.PolicyResponse, error)
}

type policyService struct {
	ServiceParams
}

func NewPolicyService(params ServiceParams) PolicyService {
	return &policyService{ServiceParams: params}
}

func (s *policyService) UpsertPolicy(ctx context.Context, req *dto.UpsertPolicyRequest) (*dto.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	effectiveAt := time.Now().UTC()
	if req.EffectiveAt != nil {
		effectiveAt = *req.EffectiveAt
	}

	existing, err := s.PolicyRepo.GetBySlug(ctx, req.Slug)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	var p *domainPolicy.Policy
	if existing != nil {
		existing.Title = req.Title
		existing.Body = req.Body
		existing.Version++
		existing.EffectiveAt = effectiveAt
		existing.Touch(ctx)
		if err := s.PolicyRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		p = existing
	} else {
		p = &domainPolicy.Policy{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY),
			Slug:        req.Slug,
			Title:       req.Title,
			Body:        req.Body,
			Version:     1,
			EffectiveAt: effectiveAt,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
		if err := s.PolicyRepo.Create(ctx, p); err != nil {
			return nil, err
		}
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixPolicy, p.Slug))
	s.Logger.Infow("upserted policy", "policy_id", p.ID, "slug", p.Slug, "version", p.Version)
	return s.toResponse(p)
}

func (s *policyService) toResponse(p *domainPolicy.Policy) (*dto.PolicyResponse, error) {
	html, err := renderMarkdown(p.Body)
	if err != nil {
		return nil, err
	}
	return &dto.PolicyResponse{Policy: p, BodyHTML: html}, nil
}

func (s *policyService) GetPolicyBySlug(ctx context.Context, slug string) (*dto.PolicyResponse, error) {
	cacheKey := cache.GenerateKey(cache.PrefixPolicy, slug)
	if v, ok := s.Cache.Get(ctx, cacheKey); ok {
		if resp, ok := v.(*dto.PolicyResponse); ok {
			return resp, nil
		}
	}

	p, err := s.PolicyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp, err := s.toResponse(p)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, cacheKey, resp, cache.DefaultExpiration)
	return resp, nil
}

func (s *policyService) ListPolicies(ctx context.Context) ([]*dto.PolicyResponse, error) {
	policies, err := s.PolicyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		resp, err := s.toResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
