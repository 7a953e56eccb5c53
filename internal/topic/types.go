package topic

import (
	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
)

// SectionView 章节目录
type SectionView struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Order     int               `json:"order"`
	SubTopics []SubTopicSummary `json:"sub_topics"`
}

// SubTopicSummary 课时摘要，locked 表示当前用户无权查看正文
type SubTopicSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	IsPremium bool   `json:"is_premium"`
	Locked    bool   `json:"locked"`
}

type CreateSectionRequest struct {
	ID    string `json:"id" binding:"required,max=100"`
	Title string `json:"title" binding:"required,max=200"`
}

type CreateSubTopicRequest struct {
	ID             string `json:"id" binding:"required,max=100"`
	Title          string `json:"title" binding:"required,max=200"`
	TopicSectionID string `json:"topic_section_id" binding:"required"`
}

// 新建课时的默认正文
const (
	DefaultIntroduction   = "Default introduction content..."
	DefaultExplanation    = "Default explanation content..."
	DefaultImplementation = "Default implementation content..."
	DefaultExample        = "Default example content..."
)

func toSectionViews(sections []topicModel.TopicSection, premium bool) []SectionView {
	views := make([]SectionView, len(sections))
	for i, s := range sections {
		subs := make([]SubTopicSummary, len(s.SubTopics))
		for j, st := range s.SubTopics {
			subs[j] = SubTopicSummary{
				ID:        st.ID,
				Title:     st.Title,
				Order:     st.Order,
				IsPremium: st.IsPremium,
				Locked:    st.IsPremium && !premium,
			}
		}
		views[i] = SectionView{ID: s.ID, Title: s.Title, Order: s.Order, SubTopics: subs}
	}
	return views
}
