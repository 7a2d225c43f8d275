package controllers

import (
	"net/http"
	"strings"

	"maumchat/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRating records one satisfaction score for a client-side message id.
// The rating value is only checked for presence, not range; the UI is the
// one offering 1-5. Repeated submissions create separate rows.
func CreateRating(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			MessageID string `json:"message_id"`
			Rating    int    `json:"rating"`
		}
		if err := c.ShouldBindJSON(&body); err != nil ||
			strings.TrimSpace(body.MessageID) == "" || body.Rating == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "message_id and rating are required"})
			return
		}

		rt := models.Rating{MessageID: body.MessageID, Rating: body.Rating}
		if err := db.Create(&rt).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to save rating"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": rt.ID})
	}
}
