package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFallbackURLs_AddsWwwVariant(t *testing.T) {
	fallbacks := GenerateFallbackURLs("https://example.com/docs")
	assert.Contains(t, fallbacks, "https://www.example.com/docs")
}

func TestGenerateFallbackURLs_StripsWwwVariant(t *testing.T) {
	fallbacks := GenerateFallbackURLs("https://www.example.com/docs")
	assert.Contains(t, fallbacks, "https://example.com/docs")
}

func TestGenerateFallbackURLs_AddsHTTPSVariants(t *testing.T) {
	fallbacks := GenerateFallbackURLs("http://example.com/")
	assert.Contains(t, fallbacks, "https://example.com/")
	assert.Contains(t, fallbacks, "https://www.example.com/")
}

func TestGenerateFallbackURLs_HTTPSOriginalOnlyAddsWww(t *testing.T) {
	fallbacks := GenerateFallbackURLs("https://example.com/")
	assert.Contains(t, fallbacks, "https://www.example.com/")
	for _, f := range fallbacks {
		assert.NotContains(t, f, "http://", "an already-https original should never yield an http fallback")
	}
}

func TestGenerateFallbackURLs_InvalidURLReturnsEmpty(t *testing.T) {
	fallbacks := GenerateFallbackURLs("://not a url")
	assert.Empty(t, fallbacks)
}
