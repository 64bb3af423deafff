// Package identity defines who is acting on the board: a signed-in account
// or a self-asserted guest. Exactly one Identity is resolved per request and
// passed explicitly to every store call that records authorship or votes.
package identity

import (
	"hobbyhub/internal/models"
	"hobbyhub/internal/utils"
)

// GuestPrefix marks self-asserted guest tokens, e.g. "guest-k3j9x2ab".
const GuestPrefix = "guest-"

// GuestCookieName is the client-durable record holding a guest's token.
const GuestCookieName = "guestUserId"

// GuestCookieMaxAge is one year, matching the token's intended lifetime.
const GuestCookieMaxAge = 60 * 60 * 24 * 365

// Identity is the acting identity for one request. Name doubles as the
// display name on posts/comments and as the token stored in upvote sets.
// Guests carry no server-verified identity: the token is whatever the client
// presented, which is a documented trust boundary, not a bug. Clearing the
// cookie lets a guest vote again; two browsers that somehow mint the same
// token count as one voter.
type Identity struct {
	Name  string `json:"username"`
	Email string `json:"email,omitempty"` // Empty for guests
	Guest bool   `json:"guest"`
}

// Resolved reports whether the identity carries a usable display name/token.
func (id Identity) Resolved() bool {
	return id.Name != ""
}

// NewGuest mints a fresh guest identity with a random token.
func NewGuest() Identity {
	return Identity{
		Name:  GuestPrefix + utils.RandStringBytesMaskImpr(8),
		Guest: true,
	}
}

// FromToken wraps a previously persisted guest token.
func FromToken(token string) Identity {
	return Identity{Name: token, Guest: true}
}

// FromUser builds the authenticated identity for a signed-in account. The
// email is the stable unique token; the stored username is what readers see.
func FromUser(u *models.User) Identity {
	return Identity{Name: u.Email, Email: u.Email, Guest: false}
}
