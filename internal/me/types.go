package me

// UserInfoResponse 用户信息响应
type UserInfoResponse struct {
	UserID     int    `json:"user_id" example:"1"`
	Name       string `json:"name" example:"Alice"`
	Email      string `json:"email" example:"alice@example.com"`
	IsApproved bool   `json:"is_approved" example:"true"`
	IsPremium  bool   `json:"is_premium" example:"false"`
	IsAdmin    bool   `json:"is_admin" example:"false"`
}
