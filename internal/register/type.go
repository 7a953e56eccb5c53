package register

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" example:"Alice"`             // 姓名
	Email    string `json:"email" example:"alice@example.com"` // 邮箱
	Password string `json:"password" example:"secret1"`       // 密码
}
