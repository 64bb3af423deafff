package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"hobbyhub/internal/identity"
	"hobbyhub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupIdentityRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(ResolveIdentity(db))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentIdentity(c))
	})
	r.GET("/login-as/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		require.NoError(t, err)
		session := sessions.Default(c)
		session.Set("user_id", uint(id))
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	return r, db
}

func TestGuestIdentityMintedOnFirstVisit(t *testing.T) {
	r, _ := setupIdentityRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guest":true`)

	var token string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == identity.GuestCookieName {
			token = ck.Value
			assert.Equal(t, identity.GuestCookieMaxAge, ck.MaxAge)
		}
	}
	require.NotEmpty(t, token, "guest token cookie must be persisted")
	assert.True(t, strings.HasPrefix(token, identity.GuestPrefix))
}

func TestGuestIdentityStableAcrossRequests(t *testing.T) {
	r, _ := setupIdentityRouter(t)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	var token string
	for _, ck := range first.Result().Cookies() {
		if ck.Name == identity.GuestCookieName {
			token = ck.Value
		}
	}
	require.NotEmpty(t, token)

	second := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: identity.GuestCookieName, Value: token})
	r.ServeHTTP(second, req)

	assert.Contains(t, second.Body.String(), token, "same cookie resolves the same guest")
	for _, ck := range second.Result().Cookies() {
		assert.NotEqual(t, identity.GuestCookieName, ck.Name,
			"a persisted token is written at most once per guest lifetime")
	}
}

func TestAuthenticatedSessionWinsOverGuestCookie(t *testing.T) {
	r, db := setupIdentityRouter(t)

	user := models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/login-as/%d", user.ID), nil))
	sessionCookies := login.Result().Cookies()
	require.NotEmpty(t, sessionCookies)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, ck := range sessionCookies {
		req.AddCookie(ck)
	}
	req.AddCookie(&http.Cookie{Name: identity.GuestCookieName, Value: "guest-leftover"})
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"guest":false`)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "guest-leftover")
}

func TestPresentedTokenIsTrusted(t *testing.T) {
	// A guest token is self-asserted: the resolver takes whatever the client
	// presents. Clearing the cookie means a new identity — and a new vote.
	r, _ := setupIdentityRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: identity.GuestCookieName, Value: "guest-forged"})
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "guest-forged")
}
