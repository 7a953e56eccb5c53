package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/config"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/database"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/email"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/payment"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/route"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/storage"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/subscription"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	config.MustLoad(*configPath)
	conf := config.Conf

	logger, closer, err := logging.New(logging.Options{
		Level:  conf.Log.Level,
		Format: conf.Log.Format,
		Output: conf.Log.Output,
		Path:   conf.Log.Path,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger.Slog())

	// 2. 初始化数据库
	database.InitDatabase()
	defer database.Close()
	if err := model.InitTable(database.PostgresDB); err != nil {
		logger.Error(context.Background(), "数据库迁移失败", "error", err)
		os.Exit(1)
	}

	// 3. 组装依赖并设置路由
	deps := &route.Dependencies{
		Config: conf,
		Logger: logger,
		Users:  user.NewRepository(database.PostgresDB),
		Topics: topic.NewRepository(database.PostgresDB),
		Mailer: email.NewClient(&conf.Smtp),
		Gateway: payment.NewStripeGateway(payment.StripeConfig{
			SecretKey:          conf.Payment.SecretKey,
			WebhookSecret:      conf.Payment.WebhookSecret,
			Currency:           conf.Payment.Currency,
			UnitAmount:         conf.Payment.UnitAmount,
			ProductName:        conf.Payment.ProductName,
			ProductDescription: conf.Payment.ProductDescription,
		}),
	}
	if database.RedisDB != nil {
		deps.Events = subscription.NewRedisEventLog(database.RedisDB.Client)
	}
	if conf.Storage.Bucket != "" {
		blob, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:        conf.Storage.Bucket,
			Region:        conf.Storage.Region,
			Endpoint:      conf.Storage.Endpoint,
			AccessKey:     conf.Storage.AccessKey,
			SecretKey:     conf.Storage.SecretKey,
			PublicBaseURL: conf.Storage.PublicBaseURL,
		})
		if err != nil {
			logger.Error(context.Background(), "初始化对象存储失败", "error", err)
			os.Exit(1)
		}
		deps.Blob = blob
	}

	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}
	r := route.SetupRouter(deps)

	// 4. 启动服务
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Handler:      r,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	go func() {
		logger.Info(context.Background(), "服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "服务异常退出", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error(ctx, "服务关闭失败", "error", err)
		return
	}
	logger.Info(ctx, "服务已关闭")
}
