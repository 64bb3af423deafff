package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandStringBytesMaskImpr(t *testing.T) {
	a := RandStringBytesMaskImpr(8)
	b := RandStringBytesMaskImpr(8)
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.Contains(t, letterBytes, string(r))
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := RenderMarkdown("**bold** <script>alert(1)</script>")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}
