package handlers

import (
	"github.com/arkadasai/demo-api/internal/models"
	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which the auth middleware
// stores the authenticated user.
const ContextUserKey = "front.user"

// CurrentUser returns the authenticated user stored by the auth middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// userJSON renders the public user shape.
func userJSON(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"plan":       user.Plan,
		"created_at": user.CreatedAt,
	}
}
