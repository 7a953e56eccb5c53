package register

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/email"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	userModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

// PasswordCost bcrypt 计算强度
const PasswordCost = 10

// Notifier 新用户待审核通知
type Notifier interface {
	SendAdminNotification(ctx context.Context, adminEmail string, data email.AdminNotificationData) error
}

type RegisterService struct {
	users       user.Store
	gate        *admin.Gate
	notifier    Notifier
	approvalURL string
	logger      logging.Logger
}

func NewRegisterService(users user.Store, gate *admin.Gate, notifier Notifier, appURL string, logger logging.Logger) *RegisterService {
	return &RegisterService{
		users:       users,
		gate:        gate,
		notifier:    notifier,
		approvalURL: appURL + "/admin/approvals",
		logger:      logger,
	}
}

// Register 创建账号，非管理员需等待审核
func (s *RegisterService) Register(ctx context.Context, req RegisterRequest) (*userModel.User, *response.BusinessError) {
	req.Name = strings.TrimSpace(req.Name)

	// 1. 参数校验
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	// 2. 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordCost)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("密码加密失败"),
			response.WithError(err),
		)
	}

	// 3. 创建用户，唯一约束保证邮箱不重复
	isAdmin := s.gate.IsAdmin(req.Email)
	newUser := &userModel.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		IsApproved:   isAdmin,
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("该邮箱已被注册"),
				response.WithError(err),
			)
		}
		s.logger.Error(ctx, "创建用户失败", "error", err)
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("用户创建失败"),
			response.WithError(err),
		)
	}

	s.logger.Info(ctx, "用户注册成功", "user_id", newUser.ID, "auto_approved", isAdmin)

	// 4. 通知管理员，失败不影响注册结果
	if !isAdmin {
		s.notifyAdmin(ctx, newUser)
	}

	return newUser, nil
}

func (s *RegisterService) notifyAdmin(ctx context.Context, u *userModel.User) {
	if s.notifier == nil || s.gate.Email() == "" {
		return
	}
	err := s.notifier.SendAdminNotification(ctx, s.gate.Email(), email.AdminNotificationData{
		Email:       u.Email,
		Name:        u.Name,
		ApprovalURL: s.approvalURL,
	})
	if err != nil {
		s.logger.Warn(ctx, "发送审核通知失败", "user_id", u.ID, "error", err)
	}
}

// validateRequest 参数校验
func (s *RegisterService) validateRequest(req RegisterRequest) *response.BusinessError {
	if req.Name == "" {
		return invalid("姓名不能为空")
	}
	if utf8.RuneCountInString(req.Name) < 2 {
		return invalid("姓名至少需要 2 个字符")
	}
	if req.Email == "" {
		return invalid("邮箱不能为空")
	}
	if !pkg.ValidEmail(req.Email) {
		return invalid("邮箱格式不正确")
	}
	if req.Password == "" {
		return invalid("密码不能为空")
	}
	if len(req.Password) < 6 || len(req.Password) > 72 {
		return invalid("密码长度必须在6-72个字符之间")
	}
	return nil
}

func invalid(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}
