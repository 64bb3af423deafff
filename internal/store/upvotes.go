package store

import (
	"errors"

	"hobbyhub/internal/identity"
	"hobbyhub/internal/models"

	"gorm.io/gorm"
)

// UpvoteLedger maintains the per-post set of identities that have upvoted.
// The dedup check and the insert run inside one transaction, with the unique
// (post_id, voter) index closing the race between concurrent voters — the
// client never does a read-modify-write of the set.
type UpvoteLedger struct {
	db *gorm.DB
}

func NewUpvoteLedger(db *gorm.DB) *UpvoteLedger {
	return &UpvoteLedger{db: db}
}

// Upvote records one vote by the given identity and returns the complete
// updated token set, so the caller can refresh its view without a re-fetch.
// A repeated vote from the same identity fails with ErrAlreadyVoted and
// leaves the set unchanged.
func (l *UpvoteLedger) Upvote(postID uint, voter identity.Identity) ([]string, error) {
	if !voter.Resolved() {
		return nil, ErrIdentityMissing
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Upvote
		err := tx.Where("post_id = ? AND voter = ?", postID, voter.Name).First(&existing).Error
		if err == nil {
			return ErrAlreadyVoted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := models.Upvote{PostID: postID, Voter: voter.Name}
		if err := tx.Create(&vote).Error; err != nil {
			// Two in-flight votes from the same identity can both pass the
			// read above; the unique index decides the loser.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyVoted
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return voterTokens(l.db, postID)
}

// HasVoted reports whether the identity already appears in the post's upvote
// set. Advisory only — it drives button state, not authorization.
func (l *UpvoteLedger) HasVoted(postID uint, voter identity.Identity) (bool, error) {
	if !voter.Resolved() {
		return false, nil
	}
	var count int64
	err := l.db.Model(&models.Upvote{}).
		Where("post_id = ? AND voter = ?", postID, voter.Name).
		Count(&count).Error
	return count > 0, err
}
