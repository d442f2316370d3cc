package front

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arkadasai/demo-api/internal/config"
	"github.com/arkadasai/demo-api/internal/http/api/front/handlers"
	"github.com/arkadasai/demo-api/internal/models"
	"github.com/arkadasai/demo-api/internal/session"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegisterRoutes registers the public API routes, middleware, and handlers.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, sessions *session.Store, chatCfg config.ChatConfig) {
	if r == nil || db == nil || sessions == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/health", healthHandler.Health)

	authHandler := handlers.NewAuthHandler(db, sessions)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	planHandler := handlers.NewPlanHandler(db)
	r.GET("/plans", planHandler.List)

	authed := r.Group("")
	authed.Use(bearerAuthMiddleware(db, sessions))

	userHandler := handlers.NewUserHandler(db)
	authed.GET("/me", userHandler.Me)

	chatHandler := handlers.NewChatHandler(chatCfg.ReplyDelay.Std())
	authed.POST("/chat/send", chatHandler.Send)

	purchaseHandler := handlers.NewPurchaseHandler(db)
	authed.POST("/purchase/confirm", purchaseHandler.Confirm)
}

// bearerAuthMiddleware resolves the bearer token against the session index
// and loads the matching user into the request context.
func bearerAuthMiddleware(db *gorm.DB, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		userID, ok := sessions.Resolve(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; errFind != nil {
			if !errors.Is(errFind, gorm.ErrRecordNotFound) {
				log.WithError(errFind).Error("auth: load user failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(handlers.ContextUserKey, user)
		c.Next()
	}
}
