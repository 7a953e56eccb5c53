package login

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
)

type LoginHandler struct {
	service      *LoginService
	secureCookie bool
}

func NewLoginHandler(service *LoginService, secureCookie bool) *LoginHandler {
	return &LoginHandler{service: service, secureCookie: secureCookie}
}

// handle 邮箱密码登录
// @Summary 登录
// @Description 校验邮箱密码，未审核用户返回 code=7；成功后写入 access_token Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} dto.Response{data=LoginResponse}
// @Router /auth/login [post]
func (h *LoginHandler) handle(c *gin.Context) {
	var req LoginRequest
	// 请求体无法解析也属于无效输入，与账号密码错误表现一致
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, invalidCredentials(ErrInvalidInput))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	c.SetCookie(middleware.AccessTokenCookie, result.AccessToken, int(pkg.TokenTTL().Seconds()), "/", "", h.secureCookie, true)
	dto.SuccessResponse(c, result)
}
