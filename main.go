package main

import (
	"log"
	"time"

	"maumchat/models"
	"maumchat/pkg/config"
	"maumchat/pkg/realtime"
	"maumchat/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// config init via package init()

	// init DB (sqlite in same folder)
	db, err := gorm.Open(sqlite.Open(config.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// create tables at startup if absent; no migration files
	if err := db.AutoMigrate(&models.Announcement{}, &models.Rating{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, hub)
	r.Run(":" + config.Port)
}
