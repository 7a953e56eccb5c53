package pkg

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidEmail 判断邮箱格式
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
