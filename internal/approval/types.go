package approval

import "time"

// PendingUser 待审核用户
type PendingUser struct {
	ID        int       `json:"id" example:"12"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at"`
}

// ApproveRequest 审核请求，approve 缺省为 true
type ApproveRequest struct {
	UserID  int   `json:"user_id" binding:"required,min=1" example:"12"`
	Approve *bool `json:"approve" example:"true"`
}
