package login

import "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"` // 邮箱
	Password string `json:"password" example:"secret1"`        // 密码
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string        `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT 访问令牌（同时写入 cookie）
	User        pkg.Principal `json:"user"`                                                           // 会话主体
}
