package subscription

// CheckoutResponse 结账会话
type CheckoutResponse struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_123"`
}

// UpgradeRequest 管理员直接开通会员
type UpgradeRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@example.com"`
}

// WebhookAck 回调确认
type WebhookAck struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
}
