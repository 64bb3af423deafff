package handlers

import (
	"net/http"
	"strconv"

	"hobbyhub/internal/middleware"
	"hobbyhub/internal/models"
	"hobbyhub/internal/store"
	"hobbyhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts  *store.PostStore
	ledger *store.UpvoteLedger
}

func NewPostHandler(posts *store.PostStore, ledger *store.UpvoteLedger) *PostHandler {
	return &PostHandler{posts: posts, ledger: ledger}
}

// commentView is a comment plus its rendered body for the detail response.
type commentView struct {
	models.Comment
	ContentHTML string `json:"content_html"`
}

// detailPayload is the shared (viewer-independent) part of the detail
// response; the per-viewer has_upvoted flag is injected per request.
type detailPayload struct {
	Post        models.Post   `json:"post"`
	ContentHTML string        `json:"content_html"`
	Comments    []commentView `json:"comments"`
}

// List serves GET /api/posts?q=&sort=. Unfiltered snapshots are cached
// briefly; filtered searches always hit the store.
func (h *PostHandler) List(c *gin.Context) {
	filter := c.Query("q")
	sort := c.DefaultQuery("sort", store.SortNewest)
	if sort != store.SortNewest && sort != store.SortPopular {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be 'newest' or 'popular'"})
		return
	}

	if filter == "" {
		if cached := utils.GetCache().Get(listCacheKey(sort)); cached != nil {
			if posts, ok := cached.([]models.Post); ok {
				c.JSON(http.StatusOK, posts)
				return
			}
		}
	}

	posts, err := h.posts.List(filter, sort)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	if filter == "" {
		utils.GetCache().Set(listCacheKey(sort), posts, listCacheTTL)
	}
	c.JSON(http.StatusOK, posts)
}

// Create serves POST /api/posts. Any identity, guests included, may post;
// the supplied secret gates later edits and deletion.
func (h *PostHandler) Create(c *gin.Context) {
	var fields store.PostFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.posts.Create(middleware.CurrentIdentity(c), fields)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	invalidatePostCaches(post.ID)
	c.JSON(http.StatusCreated, post)
}

// Detail serves GET /api/posts/:id. The shared payload (post, rendered
// content, comments) is cached; has_upvoted is the viewer's own and is
// queried fresh every time.
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var payload *detailPayload
	if cached := utils.GetCache().Get(detailCacheKey(id)); cached != nil {
		if p, ok := cached.(*detailPayload); ok {
			payload = p
		}
	}

	if payload == nil {
		post, err := h.posts.Get(id)
		if err != nil {
			abortStoreError(c, err)
			return
		}
		comments, err := h.posts.Comments(id)
		if err != nil {
			abortStoreError(c, err)
			return
		}

		views := make([]commentView, len(comments))
		for i, com := range comments {
			views[i] = commentView{Comment: com, ContentHTML: utils.RenderMarkdown(com.Content)}
		}
		payload = &detailPayload{
			Post:        *post,
			ContentHTML: utils.RenderMarkdown(post.Content),
			Comments:    views,
		}
		utils.GetCache().Set(detailCacheKey(id), payload, detailCacheTTL)
	}

	hasUpvoted, err := h.ledger.HasVoted(id, middleware.CurrentIdentity(c))
	if err != nil {
		// Advisory flag only; don't fail the whole detail view over it.
		hasUpvoted = false
	}

	c.JSON(http.StatusOK, gin.H{
		"post":         payload.Post,
		"content_html": payload.ContentHTML,
		"comments":     payload.Comments,
		"has_upvoted":  hasUpvoted,
	})
}

// Update serves PUT /api/posts/:id. The caller must present the post's
// secret; display fields are replaced, everything else is untouched.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var fields store.PostFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	if !post.MatchesSecret(fields.SecretKey) {
		c.JSON(http.StatusForbidden, gin.H{"error": "incorrect secret key"})
		return
	}

	updated, err := h.posts.Update(id, fields)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	invalidatePostCaches(id)
	c.JSON(http.StatusOK, updated)
}

type deleteInput struct {
	SecretKey string `json:"secretKey"`
}

// Delete serves DELETE /api/posts/:id, gated by the post's secret.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var input deleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	if !post.MatchesSecret(input.SecretKey) {
		c.JSON(http.StatusForbidden, gin.H{"error": "incorrect secret key"})
		return
	}

	if err := h.posts.Delete(id); err != nil {
		abortStoreError(c, err)
		return
	}

	invalidatePostCaches(id)
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return uint(id), true
}
