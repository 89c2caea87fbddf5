package model

type Notice struct {
	ID        string `json:"id"`
	FromUser  User   `json:"from_user"`
	TopicID   string `json:"topic_id,omitempty"`
	Content   string `json:"content"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type GetNoticesRequest struct{}

type GetNoticesResponse struct {
	Notices   []Notice `json:"notices"`
	NumUnread int64    `json:"num_unread"`
}

type MarkAllNoticesReadRequest struct{}

type MarkAllNoticesReadResponse struct{}

type DeleteNoticeRequest struct {
	NoticeID string `json:"notice_id"`
}

type DeleteNoticeResponse struct{}
