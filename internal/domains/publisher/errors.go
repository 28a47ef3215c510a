package publisher

import "newsapi-backend/internal/shared/apperror"

var (
	ErrEmailTaken         = apperror.Duplicate("Email already registered")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid credentials")
	ErrPublisherNotFound  = apperror.NotFound("Publisher not found")
)
