package logout

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
)

type LogoutHandler struct {
	secureCookie bool
}

func NewLogoutHandler(secureCookie bool) *LogoutHandler {
	return &LogoutHandler{secureCookie: secureCookie}
}

// Logout 用户退出登录
// @Summary 用户退出登录
// @Description 清除 access_token Cookie
// @Tags 认证
// @Produce json
// @Success 200 {object} dto.Response
// @Router /auth/logout [post]
func (h *LogoutHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)

	dto.SuccessResponse(c, gin.H{
		"message": "退出成功",
	})
}
