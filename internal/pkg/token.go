package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes 重置令牌熵，32 字节即 256 位
const resetTokenBytes = 32

// GenerateResetToken 生成十六进制编码的随机重置令牌
func GenerateResetToken() (string, error) {
	return randomHex(resetTokenBytes)
}

// GenerateRequestID 生成请求 ID
func GenerateRequestID() string {
	id, err := randomHex(16)
	if err != nil {
		return "unknown"
	}
	return id
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("生成随机数失败: %w", err)
	}
	return hex.EncodeToString(b), nil
}
