package content

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 挂载到管理员分组
func RegisterRoutes(r *gin.RouterGroup, h *ContentHandler) {
	r.PUT("/content", h.Update)
}
