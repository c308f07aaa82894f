package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOriginalURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"https", "https://example.com", ""},
		{"with path and query", "http://example.com/a/b?c=d#e", ""},
		{"opaque scheme", "mailto:someone@example.com", ""},
		{"space in path", "https://example.com/a b", ""},
		{"max port", "http://example.com:65535/", ""},
		{"port out of range", "http://example.com:99999", "error.url_invalid"},
		{"space in host", "https://exa mple.com", "error.url_invalid"},
		{"control character", "https://example.com/\x7f", "error.url_invalid"},
		{"empty", "", "error.url_required"},
		{"plain words", "not a url", "error.url_invalid"},
		{"no scheme", "example.com/path", "error.url_invalid"},
		{"scheme only", "https://", "error.url_invalid"},
		{"too long", "https://example.com/" + strings.Repeat("a", MaxURLLength), "error.url_too_long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOriginalURL(tt.url)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateShortCode(t *testing.T) {
	assert.NoError(t, ValidateShortCode("a1b2c3"))
	assert.NoError(t, ValidateShortCode("My_code-1"))
	assert.EqualError(t, ValidateShortCode(""), "error.shortcode_required")
	assert.EqualError(t, ValidateShortCode("ab cd"), "error.shortcode_cannot_contain_spaces")
	assert.EqualError(t, ValidateShortCode("a/b"), "error.shortcode_invalid")
	assert.EqualError(t, ValidateShortCode("favicon.ico"), "error.shortcode_invalid")
	assert.EqualError(t, ValidateShortCode(strings.Repeat("x", 33)), "error.shortcode_invalid")
}

func TestGenerateShortCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateShortCode()
		assert.NoError(t, err)
		assert.Regexp(t, `^[0-9a-f]{6}$`, code)
		seen[code] = struct{}{}
	}
	// 1600 万取值空间，200 次几乎不可能大量重复
	assert.Greater(t, len(seen), 190)
}
