package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"newsapi-backend/internal/domains/publisher"
	"newsapi-backend/internal/shared"
	"newsapi-backend/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type publisherService struct {
	repo   publisher.Repository
	hasher publisher.PasswordHasher
	tokens publisher.TokenIssuer
	now    func() time.Time
}

func NewPublisherService(
	repo publisher.Repository,
	hasher publisher.PasswordHasher,
	tokens publisher.TokenIssuer,
) publisher.Service {
	return &publisherService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// ============================================
// AUTH
// ============================================

func (s *publisherService) Register(ctx context.Context, req publisher.RegisterRequest) (*publisher.AuthResponse, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}

	// 2. CHECK EMAIL
	_, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, publisher.ErrEmailTaken
	case !errors.Is(err, publisher.ErrPublisherNotFound):
		return nil, fmt.Errorf("find publisher by email: %w", err)
	}

	// 3. HASH PASSWORD
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	// 4. CREATE
	now := s.now().UTC()
	p := &publisher.Publisher{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: digest,
		Name:         req.Name,
		Description:  req.Description,
		WebhookURL:   req.WebhookURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// the store's unique index decides concurrent registrations
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, publisher.ErrEmailTaken) {
			return nil, publisher.ErrEmailTaken
		}
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	log.Info().Str("publisher_id", p.ID.String()).Msg("publisher registered")

	// 5. ISSUE TOKEN
	return s.authResponse(p, 0)
}

func (s *publisherService) Login(ctx context.Context, req publisher.LoginRequest) (*publisher.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}

	p, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, publisher.ErrPublisherNotFound) {
			return nil, publisher.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find publisher by email: %w", err)
	}

	if !s.hasher.Verify(req.Password, p.PasswordHash) {
		return nil, publisher.ErrInvalidCredentials
	}

	count, err := s.repo.CountNews(ctx, p.ID, false)
	if err != nil {
		return nil, fmt.Errorf("count publisher news: %w", err)
	}

	return s.authResponse(p, count)
}

func (s *publisherService) authResponse(p *publisher.Publisher, newsCount int) (*publisher.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(p.ID.String())
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	return &publisher.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Publisher: publisher.ToResponse(p, newsCount),
	}, nil
}

// ============================================
// PROFILE
// ============================================

func (s *publisherService) Me(ctx context.Context, caller shared.Caller) (*publisher.PublisherResponse, error) {
	id, err := caller.Require()
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountNews(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("count publisher news: %w", err)
	}

	resp := publisher.ToResponse(p, count)
	return &resp, nil
}

func (s *publisherService) UpdateWebhook(ctx context.Context, caller shared.Caller, req publisher.UpdateWebhookRequest) (*publisher.PublisherResponse, error) {
	// 1. AUTH
	id, err := caller.Require()
	if err != nil {
		return nil, err
	}

	// 2. VALIDATE INPUT
	req.WebhookURL = strings.TrimSpace(req.WebhookURL)
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}

	// 3. UPDATE
	p, err := s.repo.UpdateWebhook(ctx, id, req.WebhookURL)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountNews(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("count publisher news: %w", err)
	}

	resp := publisher.ToResponse(p, count)
	return &resp, nil
}

// ============================================
// DIRECTORY
// ============================================

func (s *publisherService) List(ctx context.Context) ([]publisher.PublisherResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}

	out := make([]publisher.PublisherResponse, 0, len(rows))
	for i := range rows {
		out = append(out, publisher.ToResponse(&rows[i].Publisher, rows[i].NewsCount))
	}
	return out, nil
}
