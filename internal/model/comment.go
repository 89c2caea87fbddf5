package model

type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    User   `json:"author,omitempty"`
	TopicID   string `json:"topic_id"`
	CreatedAt string `json:"created_at"`
}

type CreateCommentRequest struct {
	TopicID string `json:"topic_id"`
	Content string `json:"content"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
	TopicID string  `json:"topic_id"`
}
