package subscription

import (
	"context"
	"errors"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/payment"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

type SubscriptionService struct {
	users   user.Store
	gateway payment.Gateway
	events  EventLog
	appURL  string
	logger  logging.Logger
}

// NewSubscriptionService events 可以为 nil，此时不做重复识别，依赖更新本身的幂等性
func NewSubscriptionService(users user.Store, gateway payment.Gateway, events EventLog, appURL string, logger logging.Logger) *SubscriptionService {
	return &SubscriptionService{users: users, gateway: gateway, events: events, appURL: appURL, logger: logger}
}

// Checkout 为当前用户创建结账会话
func (s *SubscriptionService) Checkout(ctx context.Context, email string) (CheckoutResponse, *response.BusinessError) {
	u, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		CustomerEmail: email,
		SuccessURL:    s.appURL + "/upgrade?success=true",
		CancelURL:     s.appURL + "/upgrade?canceled=true",
	})
	if err != nil {
		s.logger.Error(ctx, "创建结账会话失败", "error", err)
		return CheckoutResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.UpstreamFailure),
			response.WithErrorMessage("创建支付会话失败，请稍后重试"),
			response.WithError(err),
		)
	}
	return CheckoutResponse{URL: u}, nil
}

// HandleWebhook 先校验签名再做任何状态变更。重复投递的完成事件直接确认
func (s *SubscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookAck, *response.BusinessError) {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		s.logger.Warn(ctx, "回调签名校验失败", "error", err)
		return WebhookAck{}, response.NewBusinessError(
			response.WithErrorCode(response.SignatureInvalid),
			response.WithErrorMessage("签名校验失败"),
			response.WithError(payment.ErrInvalidSignature),
		)
	}

	log := s.logger.With("event_id", event.ID, "event_type", event.Type)

	if event.Type != payment.EventCheckoutCompleted {
		log.Debug(ctx, "忽略回调事件")
		return WebhookAck{Received: true}, nil
	}

	claimed := s.claim(ctx, log, event.ID)
	if !claimed {
		log.Info(ctx, "重复的回调事件")
		return WebhookAck{Received: true, Duplicate: true}, nil
	}

	email := event.Metadata[payment.MetadataUserEmail]
	if email == "" {
		log.Warn(ctx, "回调事件缺少 userEmail")
		return WebhookAck{Received: true}, nil
	}

	if err := s.users.SetPremiumByEmail(ctx, email); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			log.Warn(ctx, "付款用户不存在", "email", email)
			return WebhookAck{Received: true}, nil
		}
		s.release(ctx, log, event.ID)
		log.Error(ctx, "开通会员失败", "error", err)
		return WebhookAck{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("处理回调失败"),
			response.WithError(err),
		)
	}

	log.Info(ctx, "用户已通过支付开通会员", "email", email)
	return WebhookAck{Received: true}, nil
}

// Upgrade 管理员直接为指定邮箱开通会员，不经过支付
func (s *SubscriptionService) Upgrade(ctx context.Context, req UpgradeRequest) *response.BusinessError {
	if err := s.users.SetPremiumByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("用户不存在"),
				response.WithError(err),
			)
		}
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("开通会员失败"),
			response.WithError(err),
		)
	}
	s.logger.Info(ctx, "管理员手动开通会员", "email", req.Email)
	return nil
}

// claim 去重存储不可用时按首次处理
func (s *SubscriptionService) claim(ctx context.Context, log logging.Logger, id string) bool {
	if s.events == nil || id == "" {
		return true
	}
	ok, err := s.events.Claim(ctx, id)
	if err != nil {
		log.Warn(ctx, "记录回调事件失败", "error", err)
		return true
	}
	return ok
}

func (s *SubscriptionService) release(ctx context.Context, log logging.Logger, id string) {
	if s.events == nil || id == "" {
		return
	}
	if err := s.events.Release(ctx, id); err != nil {
		log.Warn(ctx, "撤销回调事件记录失败", "error", err)
	}
}
