package subscription

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
)

// RegisterRoutes 结账需要登录，直接开通需要管理员
func RegisterRoutes(r *gin.RouterGroup, h *SubscriptionHandler, gate *admin.Gate) {
	g := r.Group("/subscription", middleware.JWTAuth())
	g.POST("/checkout", h.Checkout)
	g.POST("/upgrade", middleware.AdminOnly(gate), h.Upgrade)
}

// RegisterWebhookRoutes 回调由支付服务调用，不经过会话认证
func RegisterWebhookRoutes(r *gin.RouterGroup, h *SubscriptionHandler) {
	r.POST("/webhooks/stripe", h.Webhook)
}
