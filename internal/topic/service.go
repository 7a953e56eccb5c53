package topic

import (
	"context"
	"errors"
	"strings"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

type TopicService struct {
	store  Store
	users  user.Store
	gate   *admin.Gate
	logger logging.Logger
}

func NewTopicService(store Store, users user.Store, gate *admin.Gate, logger logging.Logger) *TopicService {
	return &TopicService{store: store, users: users, gate: gate, logger: logger}
}

// hasPremium 管理员始终可见；普通用户以数据库中的当前状态为准，不信任会话里的旧值
func (s *TopicService) hasPremium(ctx context.Context, p pkg.Principal) (bool, error) {
	if s.gate.IsAdmin(p.Email) {
		return true, nil
	}
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsPremium, nil
}

// List 课程目录
func (s *TopicService) List(ctx context.Context, p pkg.Principal) ([]SectionView, *response.BusinessError) {
	premium, err := s.hasPremium(ctx, p)
	if err != nil {
		return nil, s.internalError(ctx, "查询用户状态失败", err)
	}
	sections, err := s.store.ListSections(ctx)
	if err != nil {
		return nil, s.internalError(ctx, "查询课程失败", err)
	}
	return toSectionViews(sections, premium), nil
}

// GetSubTopic 课时正文，高级内容仅对高级会员和管理员开放
func (s *TopicService) GetSubTopic(ctx context.Context, p pkg.Principal, id string) (*topicModel.SubTopic, *response.BusinessError) {
	st, err := s.store.GetSubTopic(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundError("课时不存在", err)
		}
		return nil, s.internalError(ctx, "查询课时失败", err)
	}
	if !st.IsPremium {
		return st, nil
	}

	premium, err := s.hasPremium(ctx, p)
	if err != nil {
		return nil, s.internalError(ctx, "查询用户状态失败", err)
	}
	if !premium {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("该内容仅对高级会员开放"),
		)
	}
	return st, nil
}

func (s *TopicService) CreateSection(ctx context.Context, req CreateSectionRequest) (*topicModel.TopicSection, *response.BusinessError) {
	section := &topicModel.TopicSection{
		ID:    strings.TrimSpace(req.ID),
		Title: strings.TrimSpace(req.Title),
	}
	if section.ID == "" || section.Title == "" {
		return nil, invalidParameter("id 和 title 不能为空")
	}

	if err := s.store.CreateSection(ctx, section); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, conflictError("章节已存在", err)
		}
		return nil, s.internalError(ctx, "创建章节失败", err)
	}
	s.logger.Info(ctx, "章节已创建", "section_id", section.ID, "order", section.Order)
	return section, nil
}

func (s *TopicService) DeleteSection(ctx context.Context, id string) *response.BusinessError {
	if err := s.store.DeleteSection(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundError("章节不存在", err)
		}
		return s.internalError(ctx, "删除章节失败", err)
	}
	s.logger.Info(ctx, "章节已删除", "section_id", id)
	return nil
}

func (s *TopicService) CreateSubTopic(ctx context.Context, req CreateSubTopicRequest) (*topicModel.SubTopic, *response.BusinessError) {
	st := &topicModel.SubTopic{
		ID:             strings.TrimSpace(req.ID),
		Title:          strings.TrimSpace(req.Title),
		TopicSectionID: strings.TrimSpace(req.TopicSectionID),
		Introduction:   DefaultIntroduction,
		Explanation:    DefaultExplanation,
		Implementation: DefaultImplementation,
		Example:        DefaultExample,
	}
	if st.ID == "" || st.Title == "" || st.TopicSectionID == "" {
		return nil, invalidParameter("id、title 和 topic_section_id 不能为空")
	}

	if err := s.store.CreateSubTopic(ctx, st); err != nil {
		switch {
		case errors.Is(err, ErrSectionNotFound):
			return nil, notFoundError("章节不存在", err)
		case errors.Is(err, ErrAlreadyExists):
			return nil, conflictError("课时已存在", err)
		}
		return nil, s.internalError(ctx, "创建课时失败", err)
	}
	s.logger.Info(ctx, "课时已创建", "sub_topic_id", st.ID, "section_id", st.TopicSectionID)
	return st, nil
}

func (s *TopicService) DeleteSubTopic(ctx context.Context, id string) *response.BusinessError {
	if err := s.store.DeleteSubTopic(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundError("课时不存在", err)
		}
		return s.internalError(ctx, "删除课时失败", err)
	}
	s.logger.Info(ctx, "课时已删除", "sub_topic_id", id)
	return nil
}

func (s *TopicService) internalError(ctx context.Context, msg string, err error) *response.BusinessError {
	s.logger.Error(ctx, msg, "error", err)
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

func invalidParameter(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}

func notFoundError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

func conflictError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Conflict),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}
