package model

type FavoriteTopicRequest struct {
	TopicID string `json:"topic_id"`
}

type FavoriteTopicResponse struct{}

type UnfavoriteTopicRequest struct {
	TopicID string `json:"topic_id"`
}

type UnfavoriteTopicResponse struct{}

type GetFavoritesRequest struct{}

type GetFavoritesResponse struct {
	Topics []Topic `json:"topics"`
}
