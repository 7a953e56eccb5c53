package me

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/config"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logout"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
)

func TestMeAndLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = &config.AppConfig{JWT: config.JWTConfig{Secret: "me-secret", ExpireTime: 1}}

	r := gin.New()
	g := r.Group("/auth")
	RegisterRoutes(g, NewMeHandler(admin.NewGate("admin@example.com")))
	logout.RegisterRoutes(g, logout.NewLogoutHandler(false))

	token, err := pkg.GenerateAccessToken(pkg.Principal{UserID: 9, Email: "admin@example.com", Name: "Admin", IsApproved: true})
	require.NoError(t, err)

	t.Run("已登录", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
		r.ServeHTTP(w, req)

		var got struct {
			Code response.ResponseCode `json:"code"`
			Data UserInfoResponse      `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, response.Success, got.Code)
		assert.Equal(t, 9, got.Data.UserID)
		assert.True(t, got.Data.IsAdmin)
		assert.False(t, got.Data.IsPremium)
	})

	t.Run("未登录", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
		var got response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, response.Unauthorized, got.Code)
	})

	t.Run("退出清除 Cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
		cookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, middleware.AccessTokenCookie+"=;")
		assert.Contains(t, cookie, "Max-Age=0")
	})
}
