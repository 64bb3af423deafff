package router

import (
	"hobbyhub/internal/handlers"
	"hobbyhub/internal/middleware"
	"hobbyhub/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const (
	writeRPS   = 1.0 / 3.0 // one write every 3 seconds per IP
	writeBurst = 3
)

// RegisterRoutes wires stores, handlers, and middleware onto the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	posts := store.NewPostStore(db)
	ledger := store.NewUpvoteLedger(db)
	comments := store.NewCommentLog(db)

	authHandler := handlers.NewAuthHandler(db)
	postHandler := handlers.NewPostHandler(posts, ledger)
	voteHandler := handlers.NewVoteHandler(ledger)
	commentHandler := handlers.NewCommentHandler(comments)

	r.Use(middleware.ResolveIdentity(db))

	limiter := middleware.NewIPRateLimiter(rate.Limit(writeRPS), writeBurst)
	limited := middleware.RateLimit(limiter)

	api := r.Group("/api")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/me", authHandler.Me)

		api.GET("/posts", postHandler.List)
		api.POST("/posts", limited, postHandler.Create)
		api.GET("/posts/:id", postHandler.Detail)
		api.PUT("/posts/:id", postHandler.Update)
		api.DELETE("/posts/:id", postHandler.Delete)

		api.POST("/posts/:id/upvote", voteHandler.Upvote)
		api.POST("/posts/:id/comments", limited, commentHandler.Create)
	}
}
