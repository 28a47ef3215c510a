package shared

import (
	"newsapi-backend/internal/shared/apperror"

	"github.com/google/uuid"
)

// Task types handled by the worker
const (
	TypeWebhookNewsViewed = "webhook:news_viewed"
)

// Caller is the identity resolved for one request.
// It is passed explicitly into every service operation.
type Caller struct {
	PublisherID   uuid.UUID
	Authenticated bool
}

// Anonymous is the zero caller
var Anonymous = Caller{}

// NewCaller returns an authenticated caller for the given publisher
func NewCaller(publisherID uuid.UUID) Caller {
	return Caller{PublisherID: publisherID, Authenticated: true}
}

// Require returns the caller's publisher id or ErrUnauthenticated
func (c Caller) Require() (uuid.UUID, error) {
	if !c.Authenticated || c.PublisherID == uuid.Nil {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	return c.PublisherID, nil
}

// Owns reports whether the caller is the given publisher
func (c Caller) Owns(publisherID uuid.UUID) bool {
	return c.Authenticated && c.PublisherID == publisherID
}
