package middleware

import (
	"hobbyhub/internal/identity"
	"hobbyhub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const IdentityKey = "identity"

// ResolveIdentity determines the acting identity for the request and sets it
// on the context. An authenticated session wins; otherwise the persisted
// guest token is used, minted and written back with a one-year expiry on
// first visit. Resolution never fails — the guest path is the failure-safe
// default, so every downstream handler sees exactly one identity.
func ResolveIdentity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID := session.Get("user_id"); userID != nil {
			var user models.User
			if err := db.First(&user, userID).Error; err == nil {
				c.Set(IdentityKey, identity.FromUser(&user))
				c.Next()
				return
			}
			// Stale session pointing at a deleted account; fall through to guest.
		}

		if token, err := c.Cookie(identity.GuestCookieName); err == nil && token != "" {
			c.Set(IdentityKey, identity.FromToken(token))
			c.Next()
			return
		}

		guest := identity.NewGuest()
		c.SetCookie(identity.GuestCookieName, guest.Name, identity.GuestCookieMaxAge, "/", "", false, false)
		c.Set(IdentityKey, guest)
		c.Next()
	}
}

// CurrentIdentity returns the identity resolved for this request. The zero
// Identity (unresolvable) is only possible if ResolveIdentity did not run.
func CurrentIdentity(c *gin.Context) identity.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(identity.Identity); ok {
			return id
		}
	}
	return identity.Identity{}
}
