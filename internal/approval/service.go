package approval

import (
	"context"
	"errors"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/email"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	userModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

// Mailer 审核通过通知
type Mailer interface {
	SendApproval(ctx context.Context, to string, data email.ApprovalData) error
}

type ApprovalService struct {
	users   user.Store
	mailer  Mailer
	appName string
	appURL  string
	logger  logging.Logger
}

func NewApprovalService(users user.Store, mailer Mailer, appName, appURL string, logger logging.Logger) *ApprovalService {
	return &ApprovalService{users: users, mailer: mailer, appName: appName, appURL: appURL, logger: logger}
}

// ListPending 获取待审核用户
func (s *ApprovalService) ListPending(ctx context.Context) ([]PendingUser, *response.BusinessError) {
	users, err := s.users.ListPending(ctx)
	if err != nil {
		s.logger.Error(ctx, "查询待审核用户失败", "error", err)
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询待审核用户失败"),
			response.WithError(err),
		)
	}

	result := make([]PendingUser, len(users))
	for i, u := range users {
		result[i] = PendingUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
	}
	return result, nil
}

// Decide 通过或撤销审核，通过时尽力发送欢迎邮件
func (s *ApprovalService) Decide(ctx context.Context, req ApproveRequest) (*userModel.User, *response.BusinessError) {
	approve := req.Approve == nil || *req.Approve

	u, err := s.users.SetApproved(ctx, req.UserID, approve)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("用户不存在"),
				response.WithError(err),
			)
		}
		s.logger.Error(ctx, "更新审核状态失败", "user_id", req.UserID, "error", err)
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新审核状态失败"),
			response.WithError(err),
		)
	}

	s.logger.Info(ctx, "审核状态已更新", "user_id", u.ID, "approved", approve)

	if approve && s.mailer != nil {
		err := s.mailer.SendApproval(ctx, u.Email, email.ApprovalData{
			AppName:  s.appName,
			Name:     u.Name,
			LoginURL: s.appURL + "/login",
		})
		if err != nil {
			s.logger.Warn(ctx, "发送审核通过邮件失败", "user_id", u.ID, "error", err)
		}
	}

	return u, nil
}
