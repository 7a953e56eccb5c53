package password

import (
	"context"
	"errors"
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/email"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

// TokenTTL 重置令牌有效期
const TokenTTL = time.Hour

// AckMessage 无论邮箱是否存在都返回同一句话
const AckMessage = "如果该邮箱已注册，重置链接已发送，请查收邮件"

// ErrTokenInvalid 令牌不存在、已使用或已过期
var ErrTokenInvalid = errors.New("reset token invalid or expired")

// Mailer 发送重置链接
type Mailer interface {
	SendPasswordReset(ctx context.Context, to string, data email.ResetPasswordData) error
}

type PasswordService struct {
	users   user.Store
	mailer  Mailer
	appName string
	appURL  string
	logger  logging.Logger
	now     func() time.Time
	token   func() (string, error)
}

func NewPasswordService(users user.Store, mailer Mailer, appName, appURL string, logger logging.Logger) *PasswordService {
	return &PasswordService{
		users:   users,
		mailer:  mailer,
		appName: appName,
		appURL:  appURL,
		logger:  logger,
		now:     time.Now,
		token:   pkg.GenerateResetToken,
	}
}

// Forgot 为已注册邮箱签发重置令牌并发送邮件；新请求覆盖尚未使用的旧令牌
func (s *PasswordService) Forgot(ctx context.Context, req ForgotPasswordRequest) (string, *response.BusinessError) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AckMessage, nil
		}
		s.logger.Error(ctx, "查询用户失败", "error", err)
		return "", response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("请求失败，请稍后重试"),
			response.WithError(err),
		)
	}

	token, err := s.token()
	if err != nil {
		return "", response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("生成令牌失败"),
			response.WithError(err),
		)
	}

	if err := s.users.SetResetToken(ctx, u.ID, token, s.now().Add(TokenTTL)); err != nil {
		s.logger.Error(ctx, "保存重置令牌失败", "user_id", u.ID, "error", err)
		return "", response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("请求失败，请稍后重试"),
			response.WithError(err),
		)
	}

	// 邮件是用户拿到链接的唯一途径，发送失败需要告知调用方
	err = s.mailer.SendPasswordReset(ctx, u.Email, email.ResetPasswordData{
		AppName:       s.appName,
		ResetURL:      s.appURL + "/reset-password?token=" + url.QueryEscape(token),
		ExpireMinutes: int(TokenTTL.Minutes()),
	})
	if err != nil {
		s.logger.Error(ctx, "发送重置邮件失败", "user_id", u.ID, "error", err)
		return "", response.NewBusinessError(
			response.WithErrorCode(response.UpstreamFailure),
			response.WithErrorMessage("重置邮件发送失败，请稍后重试"),
			response.WithError(err),
		)
	}

	s.logger.Info(ctx, "已发送重置密码邮件", "user_id", u.ID)
	return AckMessage, nil
}

// Reset 兑换令牌并设置新密码，令牌与过期时间在同一次更新中清空
func (s *PasswordService) Reset(ctx context.Context, req ResetPasswordRequest) *response.BusinessError {
	if len(req.Password) < 6 || len(req.Password) > 72 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("密码长度必须在6-72个字符之间"),
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("密码加密失败"),
			response.WithError(err),
		)
	}

	if err := s.users.RedeemResetToken(ctx, req.Token, string(hash), s.now()); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return response.NewBusinessError(
				response.WithErrorCode(response.TokenInvalid),
				response.WithErrorMessage("重置链接无效或已过期"),
				response.WithError(ErrTokenInvalid),
			)
		}
		s.logger.Error(ctx, "重置密码失败", "error", err)
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("重置密码失败，请稍后重试"),
			response.WithError(err),
		)
	}
	return nil
}
