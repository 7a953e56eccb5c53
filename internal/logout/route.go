package logout

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 退出只清除 Cookie，不要求登录
func RegisterRoutes(r *gin.RouterGroup, h *LogoutHandler) {
	r.POST("/logout", h.Logout)
}
