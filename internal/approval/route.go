package approval

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 挂载到已经过 JWTAuth 与 AdminOnly 的分组
func RegisterRoutes(r *gin.RouterGroup, h *ApprovalHandler) {
	r.GET("/approvals", h.List)
	r.POST("/approvals", h.Decide)
}
