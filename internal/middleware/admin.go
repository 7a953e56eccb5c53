package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/dto"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

// AdminOnly 仅允许管理员访问，需放在 JWTAuth 之后
func AdminOnly(gate *admin.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok || !gate.IsAdmin(p.Email) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("无权限"),
			))
			c.Abort()
			return
		}
		c.Next()
	}
}
