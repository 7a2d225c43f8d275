package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"maumchat/models"
	"maumchat/pkg/cache"
	"maumchat/pkg/config"
	"maumchat/pkg/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var announcementListKey = cache.KeyFromStrings("announcements", "list")

func announcementJSON(a models.Announcement) gin.H {
	return gin.H{
		"id":         a.ID,
		"title":      a.Title,
		"content":    a.Content,
		"created_at": a.CreatedAt,
	}
}

// ListAnnouncements returns every announcement, newest first. The cached
// copy is only a read shortcut; mutations always invalidate it.
func ListAnnouncements(db *gorm.DB, lc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := lc.Get(announcementListKey); ok {
			if cached, ok2 := v.([]gin.H); ok2 {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		var rows []models.Announcement
		if err := db.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		result := make([]gin.H, 0, len(rows))
		for _, a := range rows {
			result = append(result, announcementJSON(a))
		}
		lc.Set(announcementListKey, result, time.Duration(config.AnnouncementCacheTTLSec)*time.Second)
		c.JSON(http.StatusOK, result)
	}
}

func CreateAnnouncement(db *gorm.DB, hub *realtime.Hub, lc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&body); err != nil ||
			strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "title and content are required"})
			return
		}

		a := models.Announcement{Title: body.Title, Content: body.Content}
		if err := db.Create(&a).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create announcement"})
			return
		}

		lc.Delete(announcementListKey)
		// broadcast only after the row is committed
		hub.Broadcast(realtime.EventNewAnnouncement, announcementJSON(a))
		c.JSON(http.StatusOK, announcementJSON(a))
	}
}

func DeleteAnnouncement(db *gorm.DB, hub *realtime.Hub, lc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "announcement not found"})
			return
		}

		res := db.Delete(&models.Announcement{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete announcement"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "announcement not found"})
			return
		}

		lc.Delete(announcementListKey)
		hub.Broadcast(realtime.EventDeleteAnnouncement, gin.H{"id": id})
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
