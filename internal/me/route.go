package me

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *MeHandler) {
	r.GET("/me", middleware.JWTAuth(), h.GetCurrentUser)
}
