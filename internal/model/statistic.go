package model

type GetLeaderboardRequest struct{}

type GetLeaderboardResponse struct {
	Users     []User `json:"users"`
	UserCount int64  `json:"user_count"`
}

type GetUserCountRequest struct{}

type GetUserCountResponse struct {
	UserCount int64 `json:"user_count"`
}

type GetNodeIndexRequest struct{}

type GetNodeIndexResponse struct {
	Categories []CategoryNodes `json:"categories"`
}

type GetHotTopicsRequest struct{}

type GetHotTopicsResponse struct {
	Topics []Topic `json:"topics"`
}
