package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `json:"imageURL"`                       // Optional
	VideoURL  string    `json:"videoURL"`                       // Optional
	Username  string    `gorm:"not null;index" json:"username"` // Author display name at creation time, not a foreign key
	SecretKey string    `gorm:"not null" json:"-"`              // Gates edit/delete; never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，查询时填充
	Upvotes      []string `gorm:"-" json:"upvotes"`
	CommentCount int      `gorm:"-" json:"comment_count"`
}

// MatchesSecret reports whether the supplied secret equals the post's stored
// one. Exact, case-sensitive comparison, no trimming: an empty input never
// matches a non-empty secret.
func (p *Post) MatchesSecret(supplied string) bool {
	return supplied == p.SecretKey
}
