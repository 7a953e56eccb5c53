package subscription

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

// MaxWebhookBody 回调请求体上限
const MaxWebhookBody = 64 << 10

// SignatureHeader Stripe 签名头
const SignatureHeader = "Stripe-Signature"

type SubscriptionHandler struct {
	service *SubscriptionService
}

func NewSubscriptionHandler(service *SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Checkout 创建结账会话
// @Summary 创建支付会话
// @Tags 会员
// @Produce json
// @Success 200 {object} dto.Response{data=CheckoutResponse}
// @Router /subscription/checkout [post]
func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("未登录"),
		))
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), p.Email)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// Webhook 支付回调
// @Summary 支付回调
// @Description 签名错误返回 HTTP 400，处理失败返回 HTTP 500 以便支付服务重试
// @Tags 会员
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "签名"
// @Success 200 {object} dto.Response{data=WebhookAck}
// @Router /webhooks/stripe [post]
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	// 签名针对原始字节，不能先解析再序列化
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBody))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		dto.StatusErrorResponse(c, status, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("读取请求体失败"),
		))
		return
	}

	ack, berr := h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader(SignatureHeader))
	if berr != nil {
		status := http.StatusInternalServerError
		if berr.Code == response.SignatureInvalid {
			status = http.StatusBadRequest
		}
		dto.StatusErrorResponse(c, status, berr)
		return
	}
	dto.SuccessResponse(c, ack)
}

// Upgrade 管理员直接开通会员
// @Summary 直接开通会员
// @Description 仅管理员可用，不经过支付
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body UpgradeRequest true "目标邮箱"
// @Success 200 {object} dto.Response
// @Router /subscription/upgrade [post]
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}

	if err := h.service.Upgrade(c.Request.Context(), req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"email": req.Email, "is_premium": true})
}
