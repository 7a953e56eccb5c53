package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/database"
	userModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"

	"gorm.io/gorm"
)

// Repository 基于 gorm 的 Store 实现
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建用户仓库实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, u *userModel.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *Repository) ListPending(ctx context.Context) ([]userModel.User, error) {
	var users []userModel.User
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}
	return users, nil
}

func (r *Repository) SetApproved(ctx context.Context, id int, approved bool) (*userModel.User, error) {
	res := r.db.WithContext(ctx).Model(&userModel.User{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if res.Error != nil {
		return nil, fmt.Errorf("set approved: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) SetPremiumByEmail(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).Model(&userModel.User{}).
		Where("email = ?", email).
		Update("is_premium", true)
	if res.Error != nil {
		return fmt.Errorf("set premium: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetResetToken(ctx context.Context, id int, token string, expiry time.Time) error {
	res := r.db.WithContext(ctx).Model(&userModel.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		})
	if res.Error != nil {
		return fmt.Errorf("set reset token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) error {
	// 条件更新保证同一令牌并发兑换时只有一个成功
	res := r.db.WithContext(ctx).Model(&userModel.User{}).
		Where("reset_token = ? AND reset_token_expiry >= ?", token, now).
		Updates(map[string]any{
			"password_hash":      passwordHash,
			"reset_token":        gorm.Expr("NULL"),
			"reset_token_expiry": gorm.Expr("NULL"),
		})
	if res.Error != nil {
		return fmt.Errorf("redeem reset token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&userModel.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
