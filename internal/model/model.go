package model

import (
	"fmt"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"

	"gorm.io/gorm"
)

// GetModels 返回所有需要迁移的模型
func GetModels() []any {
	return []any{
		&user.User{},
		&topic.TopicSection{},
		&topic.SubTopic{},
	}
}

func InitTable(db *gorm.DB) error {
	if err := db.AutoMigrate(GetModels()...); err != nil {
		return fmt.Errorf("数据库表迁移失败: %w", err)
	}
	return nil
}
