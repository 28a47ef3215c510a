package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	slugErr := &pgconn.PgError{Code: "23505", ConstraintName: "news_slug_key"}
	wrapped := fmt.Errorf("insert news: %w", slugErr)

	assert.True(t, IsUniqueViolation(slugErr, ""))
	assert.True(t, IsUniqueViolation(wrapped, "news_slug_key"))
	assert.False(t, IsUniqueViolation(wrapped, "publishers_email_key"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestBuildConnectionString(t *testing.T) {
	db := NewPostgresDB(&DBConfig{Host: "localhost", Port: 5432, Username: "u", Password: "p", DBName: "news"})
	assert.Equal(t, "postgresql://u:p@localhost:5432/news?sslmode=disable", db.buildConnectionString())
}

func TestCloseIsIdempotent(t *testing.T) {
	db := NewPostgresDB(&DBConfig{})
	db.Close()
	db.Close()
	assert.Nil(t, db.Pool)
}
