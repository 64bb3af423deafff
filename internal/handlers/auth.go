package handlers

import (
	"errors"
	"net/http"
	"strings"

	"hobbyhub/internal/identity"
	"hobbyhub/internal/middleware"
	"hobbyhub/internal/models"
	"hobbyhub/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup creates an account and starts a session. The display username is
// the email's local part, matching how posts record authorship.
func (h *AuthHandler) Signup(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	parts := strings.Split(input.Email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	user := models.User{
		Username: parts[0],
		Email:    input.Email,
		Password: hash,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		abortStoreError(c, err)
		return
	}

	h.startSession(c, &user)
	c.JSON(http.StatusCreated, identity.FromUser(&user))
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.startSession(c, &user)
	c.JSON(http.StatusOK, identity.FromUser(&user))
}

// Logout ends the session. The next request re-resolves the actor, falling
// back to the guest token still persisted client-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Me echoes the identity resolved for this request.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentIdentity(c))
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) {
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		// Session write failure degrades to guest on the next request.
		c.Error(err)
	}
}
