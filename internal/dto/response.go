package dto

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	res "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

// Response 统一响应格式
type Response struct {
	Code    int    `json:"code" example:"100"`        // 状态码：100-成功，其他-失败
	Message string `json:"message" example:"success"` // 响应消息
	Data    any    `json:"data,omitempty"`            // 响应数据
}

func init() {
	// 校验错误中使用 json 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(http.StatusOK, res.ErrorResponse(err.Code, err.Msg))
}

// StatusErrorResponse 以指定 HTTP 状态码返回错误，供需要对方据状态码重试的回调使用
func StatusErrorResponse(c *gin.Context, status int, err *res.BusinessError) {
	c.JSON(status, res.ErrorResponse(err.Code, err.Msg))
}

// BindError 把请求绑定错误转换为业务错误，校验失败时给出具体字段
func BindError(err error) *res.BusinessError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return res.NewBusinessError(
			res.WithErrorCode(res.InvalidParameter),
			res.WithErrorMessage(fieldMessage(verrs[0])),
			res.WithError(err),
		)
	}
	return res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("请检查参数"),
		res.WithError(err),
	)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 不能为空", field)
	case "email":
		return "邮箱格式不正确"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s 长度不能少于 %s 个字符", field, fe.Param())
		}
		return fmt.Sprintf("%s 不能小于 %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s 长度不能超过 %s 个字符", field, fe.Param())
		}
		return fmt.Sprintf("%s 不能大于 %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s 必须是 %s 之一", field, fe.Param())
	default:
		return fmt.Sprintf("%s 格式不正确", field)
	}
}
