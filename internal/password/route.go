package password

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *PasswordHandler, mws ...gin.HandlerFunc) {
	g := r.Group("", mws...)
	g.POST("/forgot-password", h.Forgot)
	g.POST("/reset-password", h.Reset)
}
