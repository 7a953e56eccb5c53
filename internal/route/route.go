package route

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/config"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/approval"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/content"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/login"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logout"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/me"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/password"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/payment"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/register"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/storage"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/subscription"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/upload"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

// Mailer 所有业务邮件，email.Client 满足该接口
type Mailer interface {
	register.Notifier
	password.Mailer
	approval.Mailer
}

// Dependencies 路由所需的外部依赖，由 main 组装
type Dependencies struct {
	Config  *config.AppConfig
	Logger  *logging.SlogLogger
	Users   user.Store
	Topics  topic.Store
	Mailer  Mailer
	Gateway payment.Gateway
	// Events 为 nil 时不做回调去重
	Events subscription.EventLog
	// Blob 为 nil 时不开放上传接口
	Blob storage.Blob
}

func initRoute(r *gin.Engine, deps *Dependencies) {
	conf := deps.Config
	gate := admin.NewGate(conf.Admin.Email)
	secure := conf.Server.SecureCookie

	limiter := middleware.NewIPRateLimiter(conf.RateLimit.RPS, conf.RateLimit.Burst)
	rateLimit := middleware.RateLimit(limiter)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		login.RegisterRoutes(authGroup,
			login.NewLoginHandler(login.NewLoginService(deps.Users, gate, deps.Logger), secure),
			rateLimit)
		register.RegisterRoutes(authGroup,
			register.NewRegisterHandler(register.NewRegisterService(deps.Users, gate, deps.Mailer, conf.App.URL, deps.Logger)),
			rateLimit)
		password.RegisterRoutes(authGroup,
			password.NewPasswordHandler(password.NewPasswordService(deps.Users, deps.Mailer, conf.App.Name, conf.App.URL, deps.Logger)),
			rateLimit)
		me.RegisterRoutes(authGroup, me.NewMeHandler(gate))
		logout.RegisterRoutes(authGroup, logout.NewLogoutHandler(secure))

		topic.RegisterRoutes(apiV1, topic.NewTopicHandler(topic.NewTopicService(deps.Topics, deps.Users, gate, deps.Logger)), gate)

		subscriptionHandler := subscription.NewSubscriptionHandler(
			subscription.NewSubscriptionService(deps.Users, deps.Gateway, deps.Events, conf.App.URL, deps.Logger))
		subscription.RegisterRoutes(apiV1, subscriptionHandler, gate)
		subscription.RegisterWebhookRoutes(apiV1, subscriptionHandler)

		adminOnly := apiV1.Group("", middleware.JWTAuth(), middleware.AdminOnly(gate))
		approval.RegisterRoutes(adminOnly.Group("/admin"),
			approval.NewApprovalHandler(approval.NewApprovalService(deps.Users, deps.Mailer, conf.App.Name, conf.App.URL, deps.Logger)))
		content.RegisterRoutes(adminOnly, content.NewContentHandler(content.NewContentService(deps.Topics, deps.Logger)))
		if deps.Blob != nil {
			upload.RegisterRoutes(adminOnly,
				upload.NewUploadHandler(upload.NewUploadService(deps.Blob, deps.Logger), conf.Storage.MaxUploadSize))
		} else {
			deps.Logger.Warn(context.Background(), "未配置对象存储，上传接口关闭")
		}
	}
}

func SetupRouter(deps *Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(deps.Logger.Slog()))

	allowedOrigins := deps.Config.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{deps.Config.App.URL}
	}

	// 设置跨域请求，会话通过 Cookie 传递
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader, subscription.SignatureHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	initRoute(r, deps)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.ErrorResponse(response.NotFound, "接口不存在"))
	})

	return r
}
