package password

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required" example:"alice@example.com"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required" example:"9f86d081884c7d65..."`
	Password string `json:"password" binding:"required,min=6,max=72" example:"newpass1"`
}
