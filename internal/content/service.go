package content

import (
	"context"
	"errors"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/topic"
)

// Updater 正文写入，由 topic.Repository 实现
type Updater interface {
	UpdateContent(ctx context.Context, subTopicID string, field topic.ContentField, content string) error
}

type ContentService struct {
	store  Updater
	logger logging.Logger
}

func NewContentService(store Updater, logger logging.Logger) *ContentService {
	return &ContentService{store: store, logger: logger}
}

// Update 覆盖写入课时的某个正文字段
func (s *ContentService) Update(ctx context.Context, req UpdateContentRequest) *response.BusinessError {
	field := topic.ContentField(req.Field)
	if !field.Valid() {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("field 必须是 explanation 或 implementation"),
		)
	}

	if err := s.store.UpdateContent(ctx, req.SubTopicID, field, req.Content); err != nil {
		if errors.Is(err, topic.ErrNotFound) {
			return response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("课时不存在"),
				response.WithError(err),
			)
		}
		s.logger.Error(ctx, "更新课时内容失败", "sub_topic_id", req.SubTopicID, "field", req.Field, "error", err)
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新课时内容失败"),
			response.WithError(err),
		)
	}

	s.logger.Info(ctx, "课时内容已更新", "sub_topic_id", req.SubTopicID, "field", req.Field, "length", len(req.Content))
	return nil
}
