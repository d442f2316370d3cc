package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/arkadasai/demo-api/internal/models"
	"github.com/arkadasai/demo-api/internal/security"
	"github.com/arkadasai/demo-api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// defaultName is used when register or auto-provisioning omits a display name.
const defaultName = "Guest"

// AuthHandler serves registration and login.
type AuthHandler struct {
	db       *gorm.DB
	sessions *session.Store
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, sessions *session.Store) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions}
}

// registerRequest defines the request body for registration.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a new user and issues a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email"})
		return
	}
	password := strings.TrimSpace(body.Password)
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	var existing models.User
	errFind := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&existing).Error
	if errFind == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
		return
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		log.WithError(errFind).Error("register: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	user, errCreate := h.createUser(c, email, password, strings.TrimSpace(body.Name))
	if errCreate != nil {
		// Backstop for a concurrent register racing past the lookup.
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		log.WithError(errCreate).Error("register: create user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
		return
	}

	token := h.sessions.Issue(user.ID)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(user)})
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues a fresh token for an existing user, auto-provisioning the
// account when the email is unseen. Any non-empty password is accepted.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email"})
		return
	}
	password := strings.TrimSpace(body.Password)
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	var user models.User
	errFind := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error
	switch {
	case errFind == nil:
		// Demo behavior: the presented password is not verified.
	case errors.Is(errFind, gorm.ErrRecordNotFound):
		created, errCreate := h.createUser(c, email, password, "")
		if errCreate != nil {
			log.WithError(errCreate).Error("login: auto-provision failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
			return
		}
		user = created
	default:
		log.WithError(errFind).Error("login: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	token := h.sessions.Issue(user.ID)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(user)})
}

// createUser inserts a fresh user on the free plan.
func (h *AuthHandler) createUser(c *gin.Context, email, password, name string) (models.User, error) {
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return models.User{}, errHash
	}
	if name == "" {
		name = defaultName
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Password:  hash,
		Plan:      "free",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&user).Error; errCreate != nil {
		return models.User{}, errCreate
	}
	return user, nil
}
