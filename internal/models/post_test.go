package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesSecret(t *testing.T) {
	post := &Post{SecretKey: "abc123"}

	assert.True(t, post.MatchesSecret("abc123"))
	assert.False(t, post.MatchesSecret("ABC123"), "comparison is case-sensitive")
	assert.False(t, post.MatchesSecret(" abc123"), "no trimming")
	assert.False(t, post.MatchesSecret("abc123 "), "no trimming")
	assert.False(t, post.MatchesSecret(""))
	assert.False(t, post.MatchesSecret("wrong"))
}

func TestMatchesSecretEmptyStored(t *testing.T) {
	// Create rejects empty secrets, but the predicate itself stays a pure
	// equality check.
	post := &Post{SecretKey: ""}
	assert.True(t, post.MatchesSecret(""))
	assert.False(t, post.MatchesSecret("anything"))
}
