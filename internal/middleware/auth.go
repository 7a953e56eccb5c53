package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

// AccessTokenCookie 会话 Cookie 名称
const AccessTokenCookie = "access_token"

// 上下文键
const (
	KeyUserID     = "user_id"
	KeyEmail      = "email"
	KeyName       = "name"
	KeyIsApproved = "is_approved"
	KeyIsPremium  = "is_premium"
)

var errNoToken = errors.New("未提供认证令牌")

// parseToken 从 cookie 或 Authorization header 中解析 token
func parseToken(c *gin.Context) (pkg.Principal, error) {
	tokenString, err := c.Cookie(AccessTokenCookie)
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return pkg.Principal{}, errNoToken
		}
		var ok bool
		tokenString, ok = strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return pkg.Principal{}, pkg.ErrInvalidToken
		}
	}

	claims, err := pkg.ParseAccessToken(tokenString)
	if err != nil {
		return pkg.Principal{}, err
	}
	return claims.Principal()
}

func setPrincipal(c *gin.Context, p pkg.Principal) {
	c.Set(KeyUserID, p.UserID)
	c.Set(KeyEmail, p.Email)
	c.Set(KeyName, p.Name)
	c.Set(KeyIsApproved, p.IsApproved)
	c.Set(KeyIsPremium, p.IsPremium)
}

// CurrentPrincipal 读取 JWTAuth 写入上下文的会话主体
func CurrentPrincipal(c *gin.Context) (pkg.Principal, bool) {
	id, ok := c.Get(KeyUserID)
	if !ok {
		return pkg.Principal{}, false
	}
	userID, ok := id.(int)
	if !ok {
		return pkg.Principal{}, false
	}
	return pkg.Principal{
		UserID:     userID,
		Email:      c.GetString(KeyEmail),
		Name:       c.GetString(KeyName),
		IsApproved: c.GetBool(KeyIsApproved),
		IsPremium:  c.GetBool(KeyIsPremium),
	}, true
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := parseToken(c)
		if err != nil {
			msg := "登录已失效，请重新登录"
			if errors.Is(err, errNoToken) {
				msg = "未登录"
			}
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(msg),
			))
			c.Abort()
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}
