package domain

import (
	"context"
	"testing"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/testutil"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newStatisticDomainForTest(redisClient *testutil.MockRedisClient) *statisticDomain {
	return &statisticDomain{
		userRepo:     repository.NewUserRepository(),
		topicRepo:    repository.NewTopicRepository(),
		commentRepo:  repository.NewCommentRepository(),
		nodeRepo:     repository.NewNodeRepository(),
		categoryRepo: repository.NewCategoryRepository(),
		redisClient:  redisClient,
	}
}

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	d := newStatisticDomainForTest(&testutil.MockRedisClient{})

	userRepo := repository.NewUserRepository()
	top, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, userRepo.IncreaseTopicCount(ctx, top.ID))

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.UserCount)
	require.Equal(t, top.ID, resp.Users[0].ID)
}

func Test_statisticDomain_GetLeaderboard_ServedFromCache(t *testing.T) {
	ctx := testutil.MockContext()

	setCalls := 0
	mockRedis := &testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			*(v.(*model.GetLeaderboardResponse)) = model.GetLeaderboardResponse{UserCount: 42}
			return nil
		},
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			setCalls++
			return nil
		},
	}

	d := newStatisticDomainForTest(mockRedis)

	// A cache hit is returned as-is, even when the database has moved on.
	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(42), resp.UserCount)
	require.Equal(t, 0, setCalls)
}

func Test_statisticDomain_GetUserCount(t *testing.T) {
	ctx := testutil.MockContext()
	d := newStatisticDomainForTest(&testutil.MockRedisClient{})

	_, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	resp, err := d.GetUserCount(ctx, &model.GetUserCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.UserCount)
}

func Test_statisticDomain_GetNodeIndex(t *testing.T) {
	ctx := testutil.MockContext()
	d := newStatisticDomainForTest(&testutil.MockRedisClient{})

	node, err := testutil.SampleNode(ctx, nil)
	require.NoError(t, err)

	resp, err := d.GetNodeIndex(ctx, &model.GetNodeIndexRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	require.Len(t, resp.Categories[0].Nodes, 1)
	require.Equal(t, node.Slug, resp.Categories[0].Nodes[0].Slug)
}

func Test_statisticDomain_GetHotTopics(t *testing.T) {
	ctx := testutil.MockContext()
	d := newStatisticDomainForTest(&testutil.MockRedisClient{})

	commentRepo := repository.NewCommentRepository()

	quiet, err := testutil.SampleTopic(ctx, nil)
	require.NoError(t, err)
	busy, err := testutil.SampleTopic(ctx, nil)
	require.NoError(t, err)
	commenter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err = commentRepo.Create(ctx, &entity.Comment{
			Base:     entity.Base{ID: uuid.NewString()},
			Content:  "hot",
			AuthorID: commenter.ID,
			TopicID:  busy.ID,
		})
		require.NoError(t, err)
	}

	err = commentRepo.Create(ctx, &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		Content:  "quiet",
		AuthorID: commenter.ID,
		TopicID:  quiet.ID,
	})
	require.NoError(t, err)

	// A comment older than the window does not count.
	old := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		Content:  "old",
		AuthorID: commenter.ID,
		TopicID:  quiet.ID,
	}
	require.NoError(t, commentRepo.Create(ctx, old))
	err = xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("id=?", old.ID).
		Update("created_at", time.Now().Add(-25*time.Hour)).Error
	require.NoError(t, err)

	resp, err := d.GetHotTopics(ctx, &model.GetHotTopicsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Topics, 2)
	require.Equal(t, busy.ID, resp.Topics[0].ID)
	require.Equal(t, quiet.ID, resp.Topics[1].ID)
}
