package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/agora-lab/backend/internal/common"
	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/storage"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowing(ctx context.Context, req *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
	UploadAvatar(ctx context.Context, req *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
	DeleteAvatar(ctx context.Context, req *model.DeleteAvatarRequest) (*model.DeleteAvatarResponse, error)
	GetUserTopics(ctx context.Context, req *model.GetUserTopicsRequest) (*model.GetUserTopicsResponse, error)
	GetUserComments(ctx context.Context, req *model.GetUserCommentsRequest) (*model.GetUserCommentsResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	followerRepo repository.FollowerRepository
	topicRepo    repository.TopicRepository
	commentRepo  repository.CommentRepository
	nodeRepo     repository.NodeRepository
	fileStorage  storage.Storage
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	topicRepo repository.TopicRepository,
	commentRepo repository.CommentRepository,
	nodeRepo repository.NodeRepository,
	fileStorage storage.Storage,
) UserDomain {
	return &userDomain{
		userRepo:     userRepo,
		followerRepo: followerRepo,
		topicRepo:    topicRepo,
		commentRepo:  commentRepo,
		nodeRepo:     nodeRepo,
		fileStorage:  fileStorage,
	}
}

func (d *userDomain) GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	numFollower, err := d.followerRepo.Count(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	isFollowing := false
	if requestUserID := xcontext.RequestUserID(ctx); requestUserID != "" {
		_, err := d.followerRepo.Get(ctx, user.ID, requestUserID)
		if err == nil {
			isFollowing = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the follower edge: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetUserResponse{
		User:        model.ConvertUser(user, false),
		NumFollower: numFollower,
		IsFollowing: isFollowing,
	}, nil
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *userDomain) UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	updates := map[string]any{
		"bio":      req.Bio,
		"location": req.Location,
		"website":  req.Website,
		"weibo":    strings.TrimPrefix(strings.TrimSpace(req.Weibo), "@"),
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && email != user.Email {
		if !strings.Contains(email, "@") {
			return nil, errorx.New(errorx.BadRequest, "Invalid email address")
		}

		if _, err := d.userRepo.GetByEmail(ctx, email); err == nil {
			return nil, errorx.New(errorx.AlreadyExists, "This email has been registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
			return nil, errorx.Unknown
		}

		// Changing the address invalidates the previous verification.
		updates["email"] = email
		updates["email_verified"] = false
	}

	if err := d.userRepo.UpdateByID(ctx, userID, updates); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the profile: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProfileResponse{}, nil
}

func (d *userDomain) Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if req.UserID == followerID {
		return nil, errorx.New(errorx.BadRequest, "You cannot follow yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	_, err := d.followerRepo.Get(ctx, req.UserID, followerID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have already followed this user")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the follower edge: %v", err)
		return nil, errorx.Unknown
	}

	err = d.followerRepo.Create(ctx, &entity.Follower{
		UserID:     req.UserID,
		FollowerID: followerID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the follower edge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FollowResponse{}, nil
}

// Unfollow succeeds even when no edge exists.
func (d *userDomain) Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if err := d.followerRepo.Delete(ctx, req.UserID, followerID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the follower edge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{}, nil
}

func (d *userDomain) GetFollowing(ctx context.Context, req *model.GetFollowingRequest) (*model.GetFollowingResponse, error) {
	edges, err := d.followerRepo.GetListByFollowerID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the following list: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	byID := map[string]entity.User{}
	for _, user := range users {
		byID[user.ID] = user
	}

	clientUsers := make([]model.User, 0, len(edges))
	for _, edge := range edges {
		if user, ok := byID[edge.UserID]; ok {
			clientUsers = append(clientUsers, model.ConvertUser(&user, false))
		}
	}

	return &model.GetFollowingResponse{Users: clientUsers}, nil
}

func (d *userDomain) UploadAvatar(ctx context.Context, req *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	uresp, err := common.ProcessAvatar(ctx, d.fileStorage, "avatar")
	if err != nil {
		return nil, err
	}

	avatarURL := uresp[0].Url
	if err := d.userRepo.UpdateByID(ctx, userID, map[string]any{"avatar_url": avatarURL}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the avatar: %v", err)
		return nil, errorx.Unknown
	}

	if user.AvatarURL != "" {
		if err := d.fileStorage.Delete(ctx, user.AvatarURL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete the old avatar: %v", err)
		}
	}

	return &model.UploadAvatarResponse{AvatarURL: avatarURL}, nil
}

func (d *userDomain) DeleteAvatar(ctx context.Context, req *model.DeleteAvatarRequest) (*model.DeleteAvatarResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.AvatarURL == "" {
		return nil, errorx.New(errorx.NotFound, "You have no avatar")
	}

	if err := d.fileStorage.Delete(ctx, user.AvatarURL); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the avatar object: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.UpdateByID(ctx, userID, map[string]any{"avatar_url": ""}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear the avatar: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteAvatarResponse{}, nil
}

func (d *userDomain) GetUserTopics(ctx context.Context, req *model.GetUserTopicsRequest) (*model.GetUserTopicsResponse, error) {
	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	topics, err := d.topicRepo.GetList(ctx, repository.GetListTopicFilter{
		AuthorID: req.UserID,
		Offset:   req.Offset,
		Limit:    clampLimit(ctx, req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get topics: %v", err)
		return nil, errorx.Unknown
	}

	clientTopics, err := convertTopics(ctx, d.userRepo, d.nodeRepo, topics)
	if err != nil {
		return nil, err
	}

	return &model.GetUserTopicsResponse{Topics: clientTopics}, nil
}

func (d *userDomain) GetUserComments(ctx context.Context, req *model.GetUserCommentsRequest) (*model.GetUserCommentsResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetList(ctx, repository.GetListCommentFilter{
		AuthorID: req.UserID,
		Offset:   req.Offset,
		Limit:    clampLimit(ctx, req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	clientComments := make([]model.Comment, 0, len(comments))
	for _, comment := range comments {
		clientComments = append(clientComments, model.ConvertComment(&comment, user))
	}

	return &model.GetUserCommentsResponse{Comments: clientComments}, nil
}
