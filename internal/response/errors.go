package response

import "fmt"

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 未登录或登录已失效
	Unauthorized ResponseCode = 3
	// 无权限
	Forbidden ResponseCode = 4
	// 资源不存在
	NotFound ResponseCode = 5
	// 资源冲突，如邮箱已注册
	Conflict ResponseCode = 6
	// 账号等待管理员审核
	ApprovalPending ResponseCode = 7
	// 外部服务（邮件、支付、存储）调用失败
	UpstreamFailure ResponseCode = 8
	// 回调签名校验失败
	SignatureInvalid ResponseCode = 9
	// 请求过于频繁
	TooManyRequests ResponseCode = 10
	// 邮箱或密码错误
	InvalidCredentials ResponseCode = 11
	// 重置令牌无效或已过期
	TokenInvalid ResponseCode = 12
)

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (be *BusinessError) Error() string {
	if be.Err != nil {
		return fmt.Sprintf("%s: %v", be.Msg, be.Err)
	}
	return be.Msg
}

func (be *BusinessError) Unwrap() error {
	return be.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}
