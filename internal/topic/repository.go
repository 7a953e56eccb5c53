package topic

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/database"
	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
)

// Repository 基于 gorm 的 Store 实现
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

// "order" 是保留字，需要通过 clause 加引号
var byOrder = clause.OrderByColumn{Column: clause.Column{Name: "order"}}

func (r *Repository) ListSections(ctx context.Context) ([]topicModel.TopicSection, error) {
	var sections []topicModel.TopicSection
	err := r.db.WithContext(ctx).
		Preload("SubTopics", func(db *gorm.DB) *gorm.DB {
			return db.Order(byOrder)
		}).
		Order(byOrder).
		Find(&sections).Error
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

func (r *Repository) GetSubTopic(ctx context.Context, id string) (*topicModel.SubTopic, error) {
	var st topicModel.SubTopic
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get sub topic: %w", err)
	}
	return &st, nil
}

func (r *Repository) CreateSection(ctx context.Context, s *topicModel.TopicSection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&topicModel.TopicSection{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count sections: %w", err)
		}
		s.Order = int(count) + 1
		if err := tx.Create(s).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("create section: %w", err)
		}
		return nil
	})
}

func (r *Repository) DeleteSection(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_section_id = ?", id).Delete(&topicModel.SubTopic{}).Error; err != nil {
			return fmt.Errorf("delete sub topics: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&topicModel.TopicSection{})
		if res.Error != nil {
			return fmt.Errorf("delete section: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *Repository) CreateSubTopic(ctx context.Context, st *topicModel.SubTopic) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parents int64
		if err := tx.Model(&topicModel.TopicSection{}).Where("id = ?", st.TopicSectionID).Count(&parents).Error; err != nil {
			return fmt.Errorf("find section: %w", err)
		}
		if parents == 0 {
			return ErrSectionNotFound
		}

		var count int64
		if err := tx.Model(&topicModel.SubTopic{}).Where("topic_section_id = ?", st.TopicSectionID).Count(&count).Error; err != nil {
			return fmt.Errorf("count sub topics: %w", err)
		}
		st.Order = int(count) + 1
		if err := tx.Create(st).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("create sub topic: %w", err)
		}
		return nil
	})
}

func (r *Repository) DeleteSubTopic(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&topicModel.SubTopic{})
	if res.Error != nil {
		return fmt.Errorf("delete sub topic: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateContent(ctx context.Context, subTopicID string, field ContentField, content string) error {
	if !field.Valid() {
		return fmt.Errorf("unsupported content field %q", field)
	}
	res := r.db.WithContext(ctx).Model(&topicModel.SubTopic{}).
		Where("id = ?", subTopicID).
		Update(string(field), content)
	if res.Error != nil {
		return fmt.Errorf("update content: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedSections 按 id 写入或覆盖章节与课时，供运维命令导入课程
func (r *Repository) SeedSections(ctx context.Context, sections []topicModel.TopicSection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range sections {
			s := sections[i]
			subTopics := s.SubTopics
			s.SubTopics = nil
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "order", "updated_at"}),
			}).Create(&s).Error; err != nil {
				return fmt.Errorf("seed section %s: %w", s.ID, err)
			}
			for j := range subTopics {
				st := subTopics[j]
				st.TopicSectionID = s.ID
				if err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"topic_section_id", "title", "order", "introduction", "explanation",
						"implementation", "example", "ppt_url", "is_premium", "updated_at",
					}),
				}).Create(&st).Error; err != nil {
					return fmt.Errorf("seed sub topic %s: %w", st.ID, err)
				}
			}
		}
		return nil
	})
}

// MarkPremium 将指定章节下的全部课时设为高级内容，返回受影响的课时数
func (r *Repository) MarkPremium(ctx context.Context, sectionIDs []string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&topicModel.SubTopic{}).
		Where("topic_section_id IN ?", sectionIDs).
		Update("is_premium", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark premium: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// UnlockAll 取消全部课时的高级标记
func (r *Repository) UnlockAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&topicModel.SubTopic{}).
		Where("is_premium = ?", true).
		Update("is_premium", false)
	if res.Error != nil {
		return 0, fmt.Errorf("unlock all: %w", res.Error)
	}
	return res.RowsAffected, nil
}
