package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeConfig 商品与密钥配置，金额单位为最小货币单位
type StripeConfig struct {
	SecretKey          string
	WebhookSecret      string
	Currency           string
	UnitAmount         int64
	ProductName        string
	ProductDescription string
}

// StripeGateway 基于 Stripe Checkout 的 Gateway 实现
type StripeGateway struct {
	config   StripeConfig
	sessions session.Client
}

var _ Gateway = (*StripeGateway)(nil)

func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	return NewStripeGatewayWithBackend(cfg, stripe.GetBackend(stripe.APIBackend))
}

// NewStripeGatewayWithBackend 使用自定义 Backend，测试时指向本地服务
func NewStripeGatewayWithBackend(cfg StripeConfig, backend stripe.Backend) *StripeGateway {
	return &StripeGateway{
		config:   cfg,
		sessions: session.Client{B: backend, Key: cfg.SecretKey},
	}
}

// CreateCheckoutSession 创建一次性付款的结账会话，返回跳转地址
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		CustomerEmail:      stripe.String(p.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.config.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(g.config.ProductName),
						Description: stripe.String(g.config.ProductDescription),
					},
					UnitAmount: stripe.Int64(g.config.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserEmail, p.CustomerEmail)

	s, err := g.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}

// ParseWebhook 校验 Stripe-Signature 并解析事件
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.config.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data != nil && len(event.Data.Raw) > 0 {
		var obj struct {
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(event.Data.Raw, &obj); err == nil {
			out.Metadata = obj.Metadata
		}
	}
	return out, nil
}
