package websocket

import (
	"maumchat/pkg/realtime"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, hub *realtime.Hub) {
	r.GET("/ws/announcements", realtime.ServeWS(hub))
}
