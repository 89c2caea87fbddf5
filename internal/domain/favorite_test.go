package domain

import (
	"testing"

	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/testutil"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newFavoriteDomainForTest() *favoriteDomain {
	return &favoriteDomain{
		favoriteRepo: repository.NewFavoriteRepository(),
		topicRepo:    repository.NewTopicRepository(),
		userRepo:     repository.NewUserRepository(),
		nodeRepo:     repository.NewNodeRepository(),
	}
}

func Test_favoriteDomain_Lifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	d := newFavoriteDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	topic, err := testutil.SampleTopic(ctx, nil)
	require.NoError(t, err)

	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	_, err = d.Favorite(userCtx, &model.FavoriteTopicRequest{TopicID: "not-exist"})
	require.Error(t, err)
	require.Equal(t, "Not found topic", err.Error())

	_, err = d.Favorite(userCtx, &model.FavoriteTopicRequest{TopicID: topic.ID})
	require.NoError(t, err)

	// Favoriting twice leaves exactly one edge.
	_, err = d.Favorite(userCtx, &model.FavoriteTopicRequest{TopicID: topic.ID})
	require.Error(t, err)
	require.Equal(t, "You have already favorited this topic", err.Error())

	count, err := d.favoriteRepo.CountByTopicID(ctx, topic.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	resp, err := d.GetFavorites(userCtx, &model.GetFavoritesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Topics, 1)
	require.Equal(t, topic.ID, resp.Topics[0].ID)

	_, err = d.Unfavorite(userCtx, &model.UnfavoriteTopicRequest{TopicID: topic.ID})
	require.NoError(t, err)

	// Unfavoriting without a mark is a silent no-op.
	_, err = d.Unfavorite(userCtx, &model.UnfavoriteTopicRequest{TopicID: topic.ID})
	require.NoError(t, err)

	count, err = d.favoriteRepo.CountByTopicID(ctx, topic.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
