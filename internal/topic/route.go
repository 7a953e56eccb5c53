package topic

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
)

// RegisterRoutes 浏览需要登录，增删需要管理员
func RegisterRoutes(r *gin.RouterGroup, h *TopicHandler, gate *admin.Gate) {
	session := r.Group("", middleware.JWTAuth())
	session.GET("/topics", h.List)
	session.GET("/subtopics/:id", h.GetSubTopic)

	manage := session.Group("", middleware.AdminOnly(gate))
	manage.POST("/topics", h.CreateSection)
	manage.DELETE("/topics/:id", h.DeleteSection)
	manage.POST("/subtopics", h.CreateSubTopic)
	manage.DELETE("/subtopics/:id", h.DeleteSubTopic)
}
