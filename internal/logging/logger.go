// Package logging 定义项目内统一使用的结构化日志接口，默认实现基于 log/slog。
package logging

import "context"

// Logger 带 context 的结构化日志接口
//
// 可变参数按键值对解析，例如：
//
//	log.Info(ctx, "用户注册成功", "user_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With 返回一个始终携带给定键值对的子 Logger
	With(args ...any) Logger
}
