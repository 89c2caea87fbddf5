package model

type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Location      string `json:"location,omitempty"`
	Website       string `json:"website,omitempty"`
	Weibo         string `json:"weibo,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	ActivityScore int    `json:"activity_score"`
	NumTopics     int    `json:"num_topics"`
	NumComments   int    `json:"num_comments"`
	EmailVerified bool   `json:"email_verified"`
	IsAdmin       bool   `json:"is_admin,omitempty"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse struct {
	User        User  `json:"user"`
	NumFollower int64 `json:"num_follower"`
	IsFollowing bool  `json:"is_following"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type UpdateProfileRequest struct {
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Weibo    string `json:"weibo"`
}

type UpdateProfileResponse struct{}

type FollowRequest struct {
	UserID string `json:"user_id"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	UserID string `json:"user_id"`
}

type UnfollowResponse struct{}

type GetFollowingRequest struct{}

type GetFollowingResponse struct {
	Users []User `json:"users"`
}

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

type DeleteAvatarRequest struct{}

type DeleteAvatarResponse struct{}

type GetUserTopicsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUserTopicsResponse struct {
	Topics []Topic `json:"topics"`
}

type GetUserCommentsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUserCommentsResponse struct {
	Comments []Comment `json:"comments"`
}
