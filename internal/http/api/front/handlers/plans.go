package handlers

import (
	"net/http"

	"github.com/arkadasai/demo-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlanHandler serves the plan catalog.
type PlanHandler struct {
	db *gorm.DB
}

// NewPlanHandler constructs a PlanHandler.
func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

// List returns the catalog in display order.
func (h *PlanHandler) List(c *gin.Context) {
	var plans []models.Plan
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("sort_order ASC").
		Find(&plans).Error; errFind != nil {
		log.WithError(errFind).Error("list plans failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list plans failed"})
		return
	}

	out := make([]gin.H, 0, len(plans))
	for _, plan := range plans {
		out = append(out, gin.H{
			"id":       plan.ID,
			"name":     plan.Name,
			"price":    plan.Price,
			"features": plan.Features,
		})
	}
	c.JSON(http.StatusOK, gin.H{"plans": out})
}
