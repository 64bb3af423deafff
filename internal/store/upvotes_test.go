package store

import (
	"fmt"
	"sync"
	"testing"

	"hobbyhub/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpvoteReturnsUpdatedSet(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostStore(db)
	ledger := NewUpvoteLedger(db)
	post := createTestPost(t, posts, "Hello", "s")

	tokens, err := ledger.Upvote(post.ID, guest("guest-xyz"))
	require.NoError(t, err)
	assert.Equal(t, []string{"guest-xyz"}, tokens)

	tokens, err = ledger.Upvote(post.ID, guest("guest-abc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"guest-xyz", "guest-abc"}, tokens)
}

func TestUpvoteDedup(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostStore(db)
	ledger := NewUpvoteLedger(db)
	post := createTestPost(t, posts, "Hello", "s")

	_, err := ledger.Upvote(post.ID, guest("guest-xyz"))
	require.NoError(t, err)

	// Voting twice yields the same final set as voting once.
	_, err = ledger.Upvote(post.ID, guest("guest-xyz"))
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	got, err := posts.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"guest-xyz"}, got.Upvotes)
}

func TestUpvoteErrors(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostStore(db)
	ledger := NewUpvoteLedger(db)
	post := createTestPost(t, posts, "Hello", "s")

	_, err := ledger.Upvote(post.ID, identity.Identity{})
	assert.ErrorIs(t, err, ErrIdentityMissing)

	_, err = ledger.Upvote(99999, guest("guest-xyz"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpvoteConcurrentDistinctVoters(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostStore(db)
	ledger := NewUpvoteLedger(db)
	post := createTestPost(t, posts, "Hello", "s")

	const voters = 8
	var wg sync.WaitGroup
	errs := make([]error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Upvote(post.ID, guest(fmt.Sprintf("guest-%02d", i)))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "voter %d", i)
	}

	got, err := posts.Get(post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Upvotes, voters, "no vote may be lost to a concurrent writer")
}

func TestHasVoted(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostStore(db)
	ledger := NewUpvoteLedger(db)
	post := createTestPost(t, posts, "Hello", "s")

	voted, err := ledger.HasVoted(post.ID, guest("guest-xyz"))
	require.NoError(t, err)
	assert.False(t, voted)

	_, err = ledger.Upvote(post.ID, guest("guest-xyz"))
	require.NoError(t, err)

	voted, err = ledger.HasVoted(post.ID, guest("guest-xyz"))
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = ledger.HasVoted(post.ID, identity.Identity{})
	require.NoError(t, err)
	assert.False(t, voted)
}
