package store

import (
	"errors"
	"strings"

	"hobbyhub/internal/identity"
	"hobbyhub/internal/models"

	"gorm.io/gorm"
)

// CommentLog is the append-only comment list attached to each post.
// Comments are never edited or deleted; ordering is whatever the store's
// insert serialization produces.
type CommentLog struct {
	db *gorm.DB
}

func NewCommentLog(db *gorm.DB) *CommentLog {
	return &CommentLog{db: db}
}

// Append adds one comment and returns the created record with its
// store-assigned timestamp, so the caller can extend its local view without
// re-fetching the whole post.
func (l *CommentLog) Append(postID uint, author identity.Identity, text string) (*models.Comment, error) {
	if !author.Resolved() {
		return nil, ErrIdentityMissing
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	var comment models.Comment
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		comment = models.Comment{
			PostID:   postID,
			Username: author.Name,
			Content:  text,
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
