package handlers

import (
	"net/http"

	"hobbyhub/internal/middleware"
	"hobbyhub/internal/store"
	"hobbyhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	log *store.CommentLog
}

func NewCommentHandler(log *store.CommentLog) *CommentHandler {
	return &CommentHandler{log: log}
}

type commentInput struct {
	Content string `json:"content"`
}

// Create serves POST /api/posts/:id/comments. The store assigns the
// timestamp and serializes concurrent appends; the created record comes back
// so the client can extend its local list without a re-fetch.
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.log.Append(id, middleware.CurrentIdentity(c), input.Content)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	invalidatePostCaches(id)
	c.JSON(http.StatusCreated, commentView{
		Comment:     *comment,
		ContentHTML: utils.RenderMarkdown(comment.Content),
	})
}
