package upload

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 挂载到管理员分组
func RegisterRoutes(r *gin.RouterGroup, h *UploadHandler) {
	r.POST("/upload", h.Upload)
}
