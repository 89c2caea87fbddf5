package domain

import (
	"database/sql"
	"testing"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/testutil"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newNoticeDomainForTest() *noticeDomain {
	return &noticeDomain{
		noticeRepo: repository.NewNoticeRepository(),
		userRepo:   repository.NewUserRepository(),
	}
}

func Test_noticeDomain_Lifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	d := newNoticeDomainForTest()

	sender, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	receiver, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	topic, err := testutil.SampleTopic(ctx, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		err = d.noticeRepo.Create(ctx, &entity.Notice{
			Base:       entity.Base{ID: uuid.NewString()},
			FromUserID: sender.ID,
			ToUserID:   receiver.ID,
			TopicID:    sql.NullString{String: topic.ID, Valid: true},
			Content:    "a notice",
		})
		require.NoError(t, err)
	}

	receiverCtx := xcontext.WithRequestUserID(ctx, receiver.ID)
	resp, err := d.GetNotices(receiverCtx, &model.GetNoticesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notices, 2)
	require.Equal(t, int64(2), resp.NumUnread)
	require.Equal(t, sender.ID, resp.Notices[0].FromUser.ID)

	_, err = d.MarkAllRead(receiverCtx, &model.MarkAllNoticesReadRequest{})
	require.NoError(t, err)

	resp, err = d.GetNotices(receiverCtx, &model.GetNoticesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notices, 2)
	require.Equal(t, int64(0), resp.NumUnread)

	// Only the receiver can delete a notice.
	senderCtx := xcontext.WithRequestUserID(ctx, sender.ID)
	_, err = d.DeleteNotice(senderCtx, &model.DeleteNoticeRequest{
		NoticeID: resp.Notices[0].ID,
	})
	require.Error(t, err)
	require.Equal(t, "Only the receiver can delete this notice", err.Error())

	_, err = d.DeleteNotice(receiverCtx, &model.DeleteNoticeRequest{
		NoticeID: resp.Notices[0].ID,
	})
	require.NoError(t, err)

	resp, err = d.GetNotices(receiverCtx, &model.GetNoticesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notices, 1)

	_, err = d.DeleteNotice(receiverCtx, &model.DeleteNoticeRequest{NoticeID: "not-exist"})
	require.Error(t, err)
	require.Equal(t, "Not found notice", err.Error())
}
