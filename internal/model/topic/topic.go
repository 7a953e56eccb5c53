package topic

import "time"

// TopicSection 课程章节，ID 为可读的 slug，如 "pega-basics"
type TopicSection struct {
	ID        string     `gorm:"column:id;type:varchar(100);primaryKey" json:"id"`
	Title     string     `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Order     int        `gorm:"column:order;not null;default:0" json:"order"`
	SubTopics []SubTopic `gorm:"foreignKey:TopicSectionID;constraint:OnDelete:CASCADE" json:"sub_topics,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TopicSection) TableName() string {
	return "topic_sections"
}

// SubTopic 章节下的课时
type SubTopic struct {
	ID             string    `gorm:"column:id;type:varchar(100);primaryKey" json:"id"`
	TopicSectionID string    `gorm:"column:topic_section_id;type:varchar(100);not null;index" json:"topic_section_id"`
	Title          string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Order          int       `gorm:"column:order;not null;default:0" json:"order"`
	Introduction   string    `gorm:"column:introduction;type:text;not null;default:''" json:"introduction"`
	Explanation    string    `gorm:"column:explanation;type:text;not null;default:''" json:"explanation"`
	Implementation string    `gorm:"column:implementation;type:text;not null;default:''" json:"implementation"`
	Example        string    `gorm:"column:example;type:text;not null;default:''" json:"example"`
	PptURL         *string   `gorm:"column:ppt_url;type:varchar(500)" json:"ppt_url"`
	IsPremium      bool      `gorm:"column:is_premium;not null;default:false" json:"is_premium"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SubTopic) TableName() string {
	return "sub_topics"
}
