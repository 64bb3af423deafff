package models

import (
	"time"
)

// Upvote records that one identity token upvoted one post. The composite
// unique index is what makes the one-vote-per-identity rule hold under
// concurrent inserts; application-level checks are advisory on top of it.
type Upvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_voter" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Voter     string    `gorm:"not null;size:120;uniqueIndex:idx_post_voter" json:"voter"`
	CreatedAt time.Time `json:"created_at"`
}
