// Package admin 唯一管理员身份判定
package admin

// Gate 管理员判定，系统中只有一个管理员，身份来自配置 admin.email
type Gate struct {
	email string
}

func NewGate(adminEmail string) *Gate {
	return &Gate{email: adminEmail}
}

// IsAdmin 邮箱精确匹配，区分大小写；空邮箱永远不是管理员
func (g *Gate) IsAdmin(email string) bool {
	if g == nil || g.email == "" || email == "" {
		return false
	}
	return email == g.email
}

// Email 返回管理员邮箱，用于发送审核通知
func (g *Gate) Email() string {
	if g == nil {
		return ""
	}
	return g.email
}
