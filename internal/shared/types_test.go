package shared

import (
	"testing"

	"newsapi-backend/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallerRequire(t *testing.T) {
	_, err := Anonymous.Require()
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	id := uuid.New()
	got, err := NewCaller(id).Require()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestCallerOwns(t *testing.T) {
	id := uuid.New()

	assert.True(t, NewCaller(id).Owns(id))
	assert.False(t, NewCaller(uuid.New()).Owns(id))
	assert.False(t, Anonymous.Owns(uuid.Nil))
}
