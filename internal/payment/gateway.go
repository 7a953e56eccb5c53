// Package payment 对接托管支付服务：创建结账会话，校验并解析回调事件。
package payment

import (
	"context"
	"errors"
)

// EventCheckoutCompleted 结账完成事件
const EventCheckoutCompleted = "checkout.session.completed"

// MetadataUserEmail 结账元数据中记录付款用户邮箱的键
const MetadataUserEmail = "userEmail"

var ErrInvalidSignature = errors.New("invalid webhook signature")

// CheckoutParams 创建结账会话参数
type CheckoutParams struct {
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// WebhookEvent 已校验的回调事件
type WebhookEvent struct {
	ID       string
	Type     string
	Metadata map[string]string
}

// Gateway 支付服务
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error)
	// ParseWebhook 用原始请求体校验签名，失败返回 ErrInvalidSignature
	ParseWebhook(payload []byte, signature string) (WebhookEvent, error)
}
