package domain

import (
	"context"
	"errors"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NoticeDomain interface {
	GetNotices(ctx context.Context, req *model.GetNoticesRequest) (*model.GetNoticesResponse, error)
	MarkAllRead(ctx context.Context, req *model.MarkAllNoticesReadRequest) (*model.MarkAllNoticesReadResponse, error)
	DeleteNotice(ctx context.Context, req *model.DeleteNoticeRequest) (*model.DeleteNoticeResponse, error)
}

type noticeDomain struct {
	noticeRepo repository.NoticeRepository
	userRepo   repository.UserRepository
}

func NewNoticeDomain(
	noticeRepo repository.NoticeRepository,
	userRepo repository.UserRepository,
) NoticeDomain {
	return &noticeDomain{noticeRepo: noticeRepo, userRepo: userRepo}
}

func (d *noticeDomain) GetNotices(ctx context.Context, req *model.GetNoticesRequest) (*model.GetNoticesResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	notices, err := d.noticeRepo.GetListByToUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notices: %v", err)
		return nil, errorx.Unknown
	}

	numUnread, err := d.noticeRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notices: %v", err)
		return nil, errorx.Unknown
	}

	fromIDSet := map[string]struct{}{}
	for _, notice := range notices {
		fromIDSet[notice.FromUserID] = struct{}{}
	}

	fromIDs := make([]string, 0, len(fromIDSet))
	for id := range fromIDSet {
		fromIDs = append(fromIDs, id)
	}

	users, err := d.userRepo.GetByIDs(ctx, fromIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userByID := map[string]entity.User{}
	for _, user := range users {
		userByID[user.ID] = user
	}

	clientNotices := make([]model.Notice, 0, len(notices))
	for _, notice := range notices {
		var fromUser *entity.User
		if u, ok := userByID[notice.FromUserID]; ok {
			fromUser = &u
		}
		clientNotices = append(clientNotices, model.ConvertNotice(&notice, fromUser))
	}

	return &model.GetNoticesResponse{
		Notices:   clientNotices,
		NumUnread: numUnread,
	}, nil
}

func (d *noticeDomain) MarkAllRead(ctx context.Context, req *model.MarkAllNoticesReadRequest) (*model.MarkAllNoticesReadResponse, error) {
	if err := d.noticeRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notices as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkAllNoticesReadResponse{}, nil
}

func (d *noticeDomain) DeleteNotice(ctx context.Context, req *model.DeleteNoticeRequest) (*model.DeleteNoticeResponse, error) {
	notice, err := d.noticeRepo.GetByID(ctx, req.NoticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notice")
		}

		xcontext.Logger(ctx).Errorf("Cannot get notice: %v", err)
		return nil, errorx.Unknown
	}

	if notice.ToUserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the receiver can delete this notice")
	}

	if err := d.noticeRepo.SoftDelete(ctx, notice.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete notice: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteNoticeResponse{}, nil
}
