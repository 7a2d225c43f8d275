package ratings

import (
	"maumchat/controllers"
	"maumchat/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers the rating submission route. Basic rate limiting keeps
// anonymous clients from flooding the table.
func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/ratings", middleware.RateLimit(), controllers.CreateRating(db))
}
