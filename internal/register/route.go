package register

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *RegisterHandler, mws ...gin.HandlerFunc) {
	r.Group("", mws...).POST("/register", h.handle)
}
