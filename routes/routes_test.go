package routes_test

import (
	"testing"
	"time"

	"maumchat/middleware"
	"maumchat/models"
	"maumchat/pkg/config"
	"maumchat/pkg/realtime"
	"maumchat/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRegisterRoutesAppliesRateLimitTunables(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:routes_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Announcement{}, &models.Rating{}))

	hub := realtime.NewHub()
	go hub.Run()

	// knock the limiter off the config values first so the wiring is visible
	middleware.SetRateLimitConfig(time.Minute, 1)

	routes.RegisterRoutes(gin.New(), db, hub)

	win, cap := middleware.RateLimitConfig()
	assert.Equal(t, time.Duration(config.RateLimitWindowSeconds)*time.Second, win)
	assert.Equal(t, config.RateLimitCapacity, cap)
}
