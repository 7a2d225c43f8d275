package routes

import (
	"net/http"
	"time"

	"maumchat/middleware"
	"maumchat/pkg/cache"
	"maumchat/pkg/config"
	"maumchat/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	announcementRoutes "maumchat/routes/announcements"
	ratingRoutes "maumchat/routes/ratings"
	websocketRoutes "maumchat/routes/websocket"
)

// RegisterRoutes wires all HTTP and websocket endpoints. Every route is
// public: this system intentionally ships without authentication, including
// the admin mutations (see README before deploying anywhere real).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "counseling chat backend running"})
	})

	middleware.SetRateLimitConfig(
		time.Duration(config.RateLimitWindowSeconds)*time.Second,
		config.RateLimitCapacity,
	)

	listCache := cache.New(8)

	websocketRoutes.Register(r, hub)

	api := r.Group("/api")
	announcementRoutes.Register(api, db, hub, listCache)
	ratingRoutes.Register(api, db)
}
