package pkg

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Principal 会话主体，签发时从存储中读取
type Principal struct {
	UserID     int    `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsApproved bool   `json:"is_approved"`
	IsPremium  bool   `json:"is_premium"`
}

// Claims JWT 自定义声明，sub 为用户 ID
type Claims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsApproved bool   `json:"is_approved"`
	IsPremium  bool   `json:"is_premium"`
	jwt.RegisteredClaims
}

// Principal 还原会话主体
func (c *Claims) Principal() (Principal, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	return Principal{
		UserID:     id,
		Email:      c.Email,
		Name:       c.Name,
		IsApproved: c.IsApproved,
		IsPremium:  c.IsPremium,
	}, nil
}

// GenerateAccessToken 生成访问令牌
func GenerateAccessToken(p Principal) (string, error) {
	now := time.Now()
	expirationTime := now.Add(time.Duration(config.Conf.JWT.ExpireTime) * time.Hour)

	claims := &Claims{
		Email:      p.Email,
		Name:       p.Name,
		IsApproved: p.IsApproved,
		IsPremium:  p.IsPremium,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(p.UserID),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.JWT.Secret))
}

// ParseAccessToken 解析并验证访问令牌
func ParseAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(config.Conf.JWT.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// TokenTTL 访问令牌有效期，用于设置 Cookie 的 MaxAge
func TokenTTL() time.Duration {
	return time.Duration(config.Conf.JWT.ExpireTime) * time.Hour
}
