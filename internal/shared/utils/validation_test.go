package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPURL(t *testing.T) {
	valid := []string{"https://hooks.example.com/news", "http://localhost:9000/hook?x=1"}
	invalid := []string{"example.com", "ftp://example.com", "https://", "not a url"}

	for _, s := range valid {
		assert.NoError(t, HTTPURL.Validate(s), s)
	}
	for _, s := range invalid {
		assert.Error(t, HTTPURL.Validate(s), s)
	}
	// empty values are left to Required
	assert.NoError(t, HTTPURL.Validate(""))
}
