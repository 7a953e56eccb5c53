package content

// UpdateContentRequest 编辑课时正文，field 只能是 explanation 或 implementation
type UpdateContentRequest struct {
	SubTopicID string `json:"sub_topic_id" binding:"required"`
	Field      string `json:"field" binding:"required,oneof=explanation implementation"`
	Content    string `json:"content"`
}
