package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/arkadasai/demo-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PurchaseHandler serves mock purchase confirmations.
type PurchaseHandler struct {
	db *gorm.DB
}

// NewPurchaseHandler constructs a PurchaseHandler.
func NewPurchaseHandler(db *gorm.DB) *PurchaseHandler {
	return &PurchaseHandler{db: db}
}

// purchaseRequest defines the request body for purchase confirmation.
type purchaseRequest struct {
	PlanID string `json:"planId"`
}

// Confirm records a plan change for the authenticated user. Confirming the
// current plan is a no-op success.
func (h *PurchaseHandler) Confirm(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var body purchaseRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	planID := strings.TrimSpace(body.PlanID)
	if planID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing planId"})
		return
	}

	var plan models.Plan
	errFind := h.db.WithContext(c.Request.Context()).First(&plan, "id = ?", planID).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown plan"})
			return
		}
		log.WithError(errFind).Error("purchase: plan lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if user.Plan != plan.ID {
		updates := map[string]any{"plan": plan.ID, "updated_at": time.Now().UTC()}
		if errUpdate := h.db.WithContext(c.Request.Context()).
			Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(updates).Error; errUpdate != nil {
			log.WithError(errUpdate).Error("purchase: update plan failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update plan failed"})
			return
		}
		user.Plan = plan.ID
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}
