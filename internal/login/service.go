package login

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

const minPasswordLength = 6

// 内部失败原因，只用于日志和测试，对外统一表现为 invalidCredentials
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownEmail    = errors.New("unknown email")
	ErrWrongPassword   = errors.New("wrong password")
	ErrApprovalPending = errors.New("approval pending")
)

const invalidCredentialsMsg = "邮箱或密码错误"

type LoginService struct {
	users  user.Store
	gate   *admin.Gate
	logger logging.Logger
}

func NewLoginService(users user.Store, gate *admin.Gate, logger logging.Logger) *LoginService {
	return &LoginService{users: users, gate: gate, logger: logger}
}

// Login 校验凭据并签发会话
func (s *LoginService) Login(ctx context.Context, req LoginRequest) (LoginResponse, *response.BusinessError) {
	// 1. 参数校验，失败与密码错误表现一致
	if !pkg.ValidEmail(req.Email) || len(req.Password) < minPasswordLength {
		return LoginResponse{}, invalidCredentials(ErrInvalidInput)
	}

	// 2. 查找用户
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.logger.Info(ctx, "登录失败", "reason", "unknown_email")
			return LoginResponse{}, invalidCredentials(ErrUnknownEmail)
		}
		s.logger.Error(ctx, "查询用户失败", "error", err)
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("登录失败，请稍后重试"),
			response.WithError(err),
		)
	}

	// 3. 审核检查先于密码比对，管理员跳过
	isAdmin := s.gate.IsAdmin(u.Email)
	if !isAdmin && !u.IsApproved {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.ApprovalPending),
			response.WithErrorMessage("账号正在等待管理员审核，审核通过后即可登录"),
			response.WithError(ErrApprovalPending),
		)
	}

	// 4. 比对密码
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info(ctx, "登录失败", "reason", "wrong_password", "user_id", u.ID)
		return LoginResponse{}, invalidCredentials(ErrWrongPassword)
	}

	// 5. 签发令牌，声明取自当前存储值
	principal := pkg.Principal{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsApproved: u.IsApproved || isAdmin,
		IsPremium:  u.IsPremium,
	}
	token, err := pkg.GenerateAccessToken(principal)
	if err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("生成令牌失败"),
			response.WithError(err),
		)
	}

	return LoginResponse{AccessToken: token, User: principal}, nil
}

func invalidCredentials(cause error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidCredentials),
		response.WithErrorMessage(invalidCredentialsMsg),
		response.WithError(cause),
	)
}
