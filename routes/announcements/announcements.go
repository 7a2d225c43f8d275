package announcements

import (
	"maumchat/controllers"
	"maumchat/pkg/cache"
	"maumchat/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers announcement CRUD routes (public, admin view included).
func Register(g *gin.RouterGroup, db *gorm.DB, hub *realtime.Hub, lc *cache.Cache) {
	g.GET("/announcements", controllers.ListAnnouncements(db, lc))
	g.POST("/announcements", controllers.CreateAnnouncement(db, hub, lc))
	g.DELETE("/announcements/:id", controllers.DeleteAnnouncement(db, hub, lc))
}
