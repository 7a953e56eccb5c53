package topic

import (
	"context"
	"errors"

	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
)

var (
	ErrNotFound        = errors.New("topic not found")
	ErrSectionNotFound = errors.New("topic section not found")
	ErrAlreadyExists   = errors.New("topic already exists")
)

// ContentField 可由管理员在线编辑的正文字段
type ContentField string

const (
	FieldExplanation    ContentField = "explanation"
	FieldImplementation ContentField = "implementation"
)

func (f ContentField) Valid() bool {
	return f == FieldExplanation || f == FieldImplementation
}

// Store 课程内容存储
type Store interface {
	// ListSections 返回全部章节及其课时，均按 order 升序
	ListSections(ctx context.Context) ([]topicModel.TopicSection, error)
	GetSubTopic(ctx context.Context, id string) (*topicModel.SubTopic, error)
	// CreateSection 将 order 设为当前章节数 + 1
	CreateSection(ctx context.Context, s *topicModel.TopicSection) error
	// DeleteSection 在同一事务中删除章节及其课时
	DeleteSection(ctx context.Context, id string) error
	// CreateSubTopic 将 order 设为所属章节的课时数 + 1，章节不存在时返回 ErrSectionNotFound
	CreateSubTopic(ctx context.Context, st *topicModel.SubTopic) error
	DeleteSubTopic(ctx context.Context, id string) error
	UpdateContent(ctx context.Context, subTopicID string, field ContentField, content string) error
}
