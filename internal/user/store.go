package user

import (
	"context"
	"errors"
	"time"

	userModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

// Store 用户凭据存储。所有状态变更都是针对单行的原子更新
type Store interface {
	Create(ctx context.Context, u *userModel.User) error
	GetByID(ctx context.Context, id int) (*userModel.User, error)
	GetByEmail(ctx context.Context, email string) (*userModel.User, error)
	// ListPending 返回未审核用户，按注册时间倒序
	ListPending(ctx context.Context) ([]userModel.User, error)
	SetApproved(ctx context.Context, id int, approved bool) (*userModel.User, error)
	SetPremiumByEmail(ctx context.Context, email string) error
	SetResetToken(ctx context.Context, id int, token string, expiry time.Time) error
	// RedeemResetToken 在令牌存在且 now 不晚于过期时间时写入新密码并清空令牌，
	// 否则返回 ErrNotFound
	RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
