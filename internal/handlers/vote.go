package handlers

import (
	"net/http"

	"hobbyhub/internal/middleware"
	"hobbyhub/internal/store"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	ledger *store.UpvoteLedger
}

func NewVoteHandler(ledger *store.UpvoteLedger) *VoteHandler {
	return &VoteHandler{ledger: ledger}
}

// Upvote serves POST /api/posts/:id/upvote. On success the response carries
// the complete updated token set — the store is the single source of truth
// for the new state, the client applies it rather than recomputing. A repeat
// vote gets 409 and no mutation.
func (h *VoteHandler) Upvote(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	tokens, err := h.ledger.Upvote(id, middleware.CurrentIdentity(c))
	if err != nil {
		abortStoreError(c, err)
		return
	}

	invalidatePostCaches(id)
	c.JSON(http.StatusOK, gin.H{"upvotes": tokens})
}
