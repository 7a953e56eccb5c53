package login

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *LoginHandler, mws ...gin.HandlerFunc) {
	r.Group("", mws...).POST("/login", h.handle)
}
