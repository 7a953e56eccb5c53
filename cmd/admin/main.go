package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/config"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/database"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/ops"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	config.MustLoad(*configPath)
	database.InitDatabase()
	defer database.Close()

	if err := model.InitTable(database.PostgresDB); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	op := ops.NewOperator(
		user.NewRepository(database.PostgresDB),
		topic.NewRepository(database.PostgresDB),
		config.Conf.Admin.Email,
		os.Stdout,
	)
	if err := op.Run(context.Background(), flag.Args()); err != nil {
		if !errors.Is(err, ops.ErrUsage) {
			fmt.Fprintln(os.Stderr, "错误:", err)
		}
		database.Close()
		os.Exit(1)
	}
}
