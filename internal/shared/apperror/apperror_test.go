package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Validation("title too short", nil), http.StatusBadRequest, CodeBadUserInput},
		{"duplicate", Duplicate("Email already registered"), http.StatusBadRequest, CodeBadUserInput},
		{"bad login", Unauthorized("Invalid email or password"), http.StatusUnauthorized, CodeUnauthorized},
		{"no identity", ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
		{"forbidden", Forbidden("not yours"), http.StatusForbidden, CodeForbidden},
		{"not found", NotFound("News not found"), http.StatusNotFound, CodeNotFound},
		{"wrapped", fmt.Errorf("service: %w", NotFound("News not found")), http.StatusNotFound, CodeNotFound},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	_, _, msg := MapErrorToHTTP(Internal("query failed", errors.New("pq: password authentication failed")))
	assert.Equal(t, "Internal server error", msg)
}

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := NotFound("News not found")
	wrapped := sentinel.Wrap(errors.New("no rows"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.Contains(t, wrapped.Error(), "no rows")
}
