package model

type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	Node        Node   `json:"node,omitempty"`
	Author      User   `json:"author,omitempty"`
	NumViews    int    `json:"num_views"`
	NumComments int    `json:"num_comments"`
	LastReplier *User  `json:"last_replier,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Node struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	NumTopics int    `json:"num_topics"`
}

type CategoryNodes struct {
	CategoryName string `json:"category_name"`
	Nodes        []Node `json:"nodes"`
}

type CreateTopicRequest struct {
	NodeSlug string `json:"node_slug"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type CreateTopicResponse struct {
	Topic Topic `json:"topic"`
}

type UpdateTopicRequest struct {
	TopicID string `json:"topic_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateTopicResponse struct{}

type GetTopicRequest struct {
	TopicID string `json:"topic_id"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetTopicResponse struct {
	Topic        Topic     `json:"topic"`
	Comments     []Comment `json:"comments"`
	NumFavorites int64     `json:"num_favorites"`
	IsFavorited  bool      `json:"is_favorited"`
}

type GetRecentTopicsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetRecentTopicsResponse struct {
	Topics []Topic `json:"topics"`
}

type GetTopicsByNodeRequest struct {
	NodeSlug string `json:"node_slug"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetTopicsByNodeResponse struct {
	Node   Node    `json:"node"`
	Topics []Topic `json:"topics"`
}
