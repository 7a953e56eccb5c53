package me

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

type MeHandler struct {
	gate *admin.Gate
}

func NewMeHandler(gate *admin.Gate) *MeHandler {
	return &MeHandler{gate: gate}
}

// GetCurrentUser 获取当前登录用户信息
// @Summary 获取当前用户信息
// @Description 从 Cookie 或 Bearer 中的 access_token 获取当前登录用户信息
// @Tags 认证
// @Produce json
// @Success 200 {object} dto.Response{data=UserInfoResponse}
// @Router /auth/me [get]
func (h *MeHandler) GetCurrentUser(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("未登录"),
		))
		return
	}

	dto.SuccessResponse(c, UserInfoResponse{
		UserID:     p.UserID,
		Name:       p.Name,
		Email:      p.Email,
		IsApproved: p.IsApproved,
		IsPremium:  p.IsPremium,
		IsAdmin:    h.gate.IsAdmin(p.Email),
	})
}
