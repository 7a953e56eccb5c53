package user

import "time"

type User struct {
	ID               int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email            string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash     string     `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	IsApproved       bool       `gorm:"column:is_approved;not null;default:false" json:"is_approved"`
	IsPremium        bool       `gorm:"column:is_premium;not null;default:false" json:"is_premium"`
	ResetToken       *string    `gorm:"column:reset_token;type:varchar(128);index" json:"-"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry;type:timestamp" json:"-"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
