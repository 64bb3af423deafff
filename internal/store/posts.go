package store

import (
	"errors"
	"fmt"
	"strings"

	"hobbyhub/internal/identity"
	"hobbyhub/internal/models"

	"gorm.io/gorm"
)

// Sort orders accepted by List.
const (
	SortNewest  = "newest"  // creation time descending
	SortPopular = "popular" // upvote count descending
)

// PostFields are the caller-supplied post attributes. SecretKey is required
// on create, accepted but never persisted on update.
type PostFields struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageURL"`
	VideoURL  string `json:"videoURL"`
	SecretKey string `json:"secretKey"`
}

// PostStore is the CRUD boundary over the posts table.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create inserts a new post authored by the given identity. Title and secret
// are required; id and created_at are assigned by the store; the upvote set
// and comment list start empty.
func (s *PostStore) Create(author identity.Identity, fields PostFields) (*models.Post, error) {
	if !author.Resolved() {
		return nil, ErrIdentityMissing
	}
	if strings.TrimSpace(fields.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrValidation)
	}
	if fields.SecretKey == "" {
		return nil, fmt.Errorf("%w: secretKey", ErrValidation)
	}

	post := models.Post{
		Title:     fields.Title,
		Content:   fields.Content,
		ImageURL:  fields.ImageURL,
		VideoURL:  fields.VideoURL,
		Username:  author.Name,
		SecretKey: fields.SecretKey,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	post.Upvotes = []string{}
	return &post, nil
}

// Get returns one post with its upvote tokens and ordered comments.
func (s *PostStore) Get(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tokens, err := voterTokens(s.db, post.ID)
	if err != nil {
		return nil, err
	}
	post.Upvotes = tokens

	var count int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	post.CommentCount = int(count)
	return &post, nil
}

// Comments returns a post's comment list in append order.
func (s *PostStore) Comments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// List returns a finite snapshot of posts, optionally filtered by a
// case-insensitive substring match on the title. sort is SortNewest or
// SortPopular; popularity ties break toward newer posts.
func (s *PostStore) List(filter string, sort string) ([]models.Post, error) {
	query := s.db.Model(&models.Post{})

	if filter != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter)+"%")
	}

	switch sort {
	case SortPopular:
		query = query.Order("(SELECT COUNT(*) FROM upvotes WHERE upvotes.post_id = posts.id) DESC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}

	if err := s.fillUpvotes(posts); err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update replaces the mutable display fields only. The secret, the upvote
// set, and the comment list are unreachable through this path.
func (s *PostStore) Update(id uint, fields PostFields) (*models.Post, error) {
	if strings.TrimSpace(fields.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrValidation)
	}

	var post models.Post
	err := s.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":     fields.Title,
		"content":   fields.Content,
		"image_url": fields.ImageURL,
		"video_url": fields.VideoURL,
	}
	if err := s.db.Model(&post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a post together with its upvote rows and comments.
func (s *PostStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.First(&post, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// fillUpvotes 批量填充帖子的点赞标识列表
func (s *PostStore) fillUpvotes(posts []models.Post) error {
	for i := range posts {
		posts[i].Upvotes = []string{}
	}
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	idx := make(map[uint]int, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		idx[p.ID] = i
	}

	var votes []models.Upvote
	if err := s.db.Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&votes).Error; err != nil {
		return err
	}
	for _, v := range votes {
		i := idx[v.PostID]
		posts[i].Upvotes = append(posts[i].Upvotes, v.Voter)
	}
	return nil
}

// fillCommentCounts 批量填充帖子的评论数量
func (s *PostStore) fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	if err := s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error; err != nil {
		return err
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}

// voterTokens returns the full upvote token set for one post, oldest first.
func voterTokens(db *gorm.DB, postID uint) ([]string, error) {
	tokens := []string{}
	err := db.Model(&models.Upvote{}).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Pluck("voter", &tokens).Error
	return tokens, err
}
