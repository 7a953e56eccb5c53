package password

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
)

type PasswordHandler struct {
	service *PasswordService
}

func NewPasswordHandler(service *PasswordService) *PasswordHandler {
	return &PasswordHandler{service: service}
}

// Forgot 申请重置密码
// @Summary 忘记密码
// @Description 邮箱存在与否返回相同提示
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "邮箱"
// @Success 200 {object} dto.Response
// @Router /auth/forgot-password [post]
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}

	msg, err := h.service.Forgot(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": msg})
}

// Reset 使用令牌重置密码
// @Summary 重置密码
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "令牌与新密码"
// @Success 200 {object} dto.Response
// @Router /auth/reset-password [post]
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}

	if err := h.service.Reset(c.Request.Context(), req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "密码已重置，请使用新密码登录"})
}
