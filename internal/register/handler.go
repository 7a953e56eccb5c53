package register

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
)

type RegisterHandler struct {
	service *RegisterService
}

func NewRegisterHandler(service *RegisterService) *RegisterHandler {
	return &RegisterHandler{service: service}
}

// handle 注册
// @Summary 注册
// @Description 创建账号；非管理员邮箱需等待审核后才能登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} dto.Response{data=user.User}
// @Router /auth/register [post]
func (h *RegisterHandler) handle(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, dto.BindError(err))
		return
	}

	newUser, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, newUser)
}
