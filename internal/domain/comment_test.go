package domain

import (
	"testing"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/testutil"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newCommentDomainForTest() *commentDomain {
	return &commentDomain{
		commentRepo: repository.NewCommentRepository(),
		topicRepo:   repository.NewTopicRepository(),
		userRepo:    repository.NewUserRepository(),
		noticeRepo:  repository.NewNoticeRepository(),
	}
}

func Test_commentDomain_CreateComment_FullWorkflow(t *testing.T) {
	ctx := testutil.MockContext()
	d := newCommentDomainForTest()

	topicAuthor, err := testutil.SampleUser(ctx, &entity.User{Name: "alice"})
	require.NoError(t, err)
	commenter, err := testutil.SampleUser(ctx, &entity.User{Name: "bob"})
	require.NoError(t, err)
	mentioned, err := testutil.SampleUser(ctx, &entity.User{Name: "carol"})
	require.NoError(t, err)

	topic, err := testutil.SampleTopic(ctx, &entity.Topic{AuthorID: topicAuthor.ID})
	require.NoError(t, err)

	content := "hello @carol and @alice and @nobody and @bob"
	commenterCtx := xcontext.WithRequestUserID(ctx, commenter.ID)
	resp, err := d.CreateComment(commenterCtx, &model.CreateCommentRequest{
		TopicID: topic.ID,
		Content: content,
	})
	require.NoError(t, err)
	require.Equal(t, topic.ID, resp.TopicID)
	require.Equal(t, "bob", resp.Comment.Author.Name)

	// The commenter counters and score are updated in the same action.
	gotCommenter, err := d.userRepo.GetByID(ctx, commenter.ID)
	require.NoError(t, err)
	require.Equal(t, 1, gotCommenter.NumComments)
	require.Equal(t, 1, gotCommenter.ActivityScore)

	// The topic records the reply.
	gotTopic, err := d.topicRepo.GetByID(ctx, topic.ID)
	require.NoError(t, err)
	require.Equal(t, 1, gotTopic.NumComments)
	require.True(t, gotTopic.LastReplierID.Valid)
	require.Equal(t, commenter.ID, gotTopic.LastReplierID.String)

	// The topic author gets exactly one notice, for the reply. The
	// mention of her name must not produce a second one.
	authorNotices, err := d.noticeRepo.GetListByToUserID(ctx, topicAuthor.ID)
	require.NoError(t, err)
	require.Len(t, authorNotices, 1)
	require.Equal(t, commenter.ID, authorNotices[0].FromUserID)
	require.Contains(t, authorNotices[0].Content, "replied")

	// The mentioned user gets one notice carrying the comment body.
	mentionNotices, err := d.noticeRepo.GetListByToUserID(ctx, mentioned.ID)
	require.NoError(t, err)
	require.Len(t, mentionNotices, 1)
	require.Equal(t, content, mentionNotices[0].Content)
	require.Equal(t, commenter.ID, mentionNotices[0].FromUserID)
	require.Equal(t, topic.ID, mentionNotices[0].TopicID.String)

	// The commenter never notifies himself.
	selfNotices, err := d.noticeRepo.GetListByToUserID(ctx, commenter.ID)
	require.NoError(t, err)
	require.Empty(t, selfNotices)
}

func Test_commentDomain_CreateComment_DuplicateSuppression(t *testing.T) {
	ctx := testutil.MockContext()
	d := newCommentDomainForTest()

	commenter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	topic, err := testutil.SampleTopic(ctx, nil)
	require.NoError(t, err)

	commenterCtx := xcontext.WithRequestUserID(ctx, commenter.ID)
	_, err = d.CreateComment(commenterCtx, &model.CreateCommentRequest{
		TopicID: topic.ID,
		Content: "same content",
	})
	require.NoError(t, err)

	_, err = d.CreateComment(commenterCtx, &model.CreateCommentRequest{
		TopicID: topic.ID,
		Content: "same content",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.AlreadyExists, "You have just posted this comment"), err)

	// A different body within the window is fine.
	_, err = d.CreateComment(commenterCtx, &model.CreateCommentRequest{
		TopicID: topic.ID,
		Content: "another content",
	})
	require.NoError(t, err)

	// The same body posted after the window is fine too.
	err = xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("author_id=?", commenter.ID).
		Update("created_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	_, err = d.CreateComment(commenterCtx, &model.CreateCommentRequest{
		TopicID: topic.ID,
		Content: "another content",
	})
	require.NoError(t, err)
}

func Test_commentDomain_CreateComment_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	d := newCommentDomainForTest()

	commenter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	topic, err := testutil.SampleTopic(ctx, nil)
	require.NoError(t, err)
	commenterCtx := xcontext.WithRequestUserID(ctx, commenter.ID)

	longContent := make([]byte, maxCommentLength+1)
	for i := range longContent {
		longContent[i] = 'a'
	}

	testcases := []struct {
		name    string
		topicID string
		content string
		wantErr string
	}{
		{
			name:    "empty content",
			topicID: topic.ID,
			content: "   ",
			wantErr: "Not allow an empty comment",
		},
		{
			name:    "too long content",
			topicID: topic.ID,
			content: string(longContent),
			wantErr: "Comment must not be longer than 1000 characters",
		},
		{
			name:    "unknown topic",
			topicID: "not-exist",
			content: "hello",
			wantErr: "Not found topic",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.CreateComment(commenterCtx, &model.CreateCommentRequest{
				TopicID: tc.topicID,
				Content: tc.content,
			})
			require.Error(t, err)
			require.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func Test_commentDomain_CreateComment_AuthorOwnTopic(t *testing.T) {
	ctx := testutil.MockContext()
	d := newCommentDomainForTest()

	author, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	topic, err := testutil.SampleTopic(ctx, &entity.Topic{AuthorID: author.ID})
	require.NoError(t, err)

	authorCtx := xcontext.WithRequestUserID(ctx, author.ID)
	_, err = d.CreateComment(authorCtx, &model.CreateCommentRequest{
		TopicID: topic.ID,
		Content: "replying to myself",
	})
	require.NoError(t, err)

	// Replying to an own topic never produces a notice.
	notices, err := d.noticeRepo.GetListByToUserID(ctx, author.ID)
	require.NoError(t, err)
	require.Empty(t, notices)
}
