package domain

import (
	"testing"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/testutil"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newUserDomainForTest() *userDomain {
	return &userDomain{
		userRepo:     repository.NewUserRepository(),
		followerRepo: repository.NewFollowerRepository(),
		topicRepo:    repository.NewTopicRepository(),
		commentRepo:  repository.NewCommentRepository(),
		nodeRepo:     repository.NewNodeRepository(),
		fileStorage:  &testutil.MockStorage{},
	}
}

func Test_userDomain_FollowUnfollow(t *testing.T) {
	ctx := testutil.MockContext()
	d := newUserDomainForTest()

	alice, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	bob, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	bobCtx := xcontext.WithRequestUserID(ctx, bob.ID)

	_, err = d.Follow(bobCtx, &model.FollowRequest{UserID: bob.ID})
	require.Error(t, err)
	require.Equal(t, "You cannot follow yourself", err.Error())

	_, err = d.Follow(bobCtx, &model.FollowRequest{UserID: "not-exist"})
	require.Error(t, err)
	require.Equal(t, "Not found user", err.Error())

	_, err = d.Follow(bobCtx, &model.FollowRequest{UserID: alice.ID})
	require.NoError(t, err)

	// Following twice leaves exactly one edge.
	_, err = d.Follow(bobCtx, &model.FollowRequest{UserID: alice.ID})
	require.Error(t, err)
	require.Equal(t, "You have already followed this user", err.Error())

	count, err := d.followerRepo.Count(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	resp, err := d.GetUser(bobCtx, &model.GetUserRequest{UserID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.NumFollower)
	require.True(t, resp.IsFollowing)

	following, err := d.GetFollowing(bobCtx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Len(t, following.Users, 1)
	require.Equal(t, alice.ID, following.Users[0].ID)

	_, err = d.Unfollow(bobCtx, &model.UnfollowRequest{UserID: alice.ID})
	require.NoError(t, err)

	// Unfollowing without an edge is a silent no-op.
	_, err = d.Unfollow(bobCtx, &model.UnfollowRequest{UserID: alice.ID})
	require.NoError(t, err)

	count, err = d.followerRepo.Count(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func Test_userDomain_UpdateProfile(t *testing.T) {
	ctx := testutil.MockContext()
	d := newUserDomainForTest()

	alice, err := testutil.SampleUser(ctx, &entity.User{EmailVerified: true})
	require.NoError(t, err)
	bob, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	aliceCtx := xcontext.WithRequestUserID(ctx, alice.ID)

	// Cannot take an email already registered by another user.
	_, err = d.UpdateProfile(aliceCtx, &model.UpdateProfileRequest{Email: bob.Email})
	require.Error(t, err)
	require.Equal(t, "This email has been registered", err.Error())

	_, err = d.UpdateProfile(aliceCtx, &model.UpdateProfileRequest{
		Email:    "new-alice@example.com",
		Bio:      "hello",
		Location: "tokyo",
		Weibo:    "@alice",
	})
	require.NoError(t, err)

	gotAlice, err := d.userRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "new-alice@example.com", gotAlice.Email)
	require.Equal(t, "hello", gotAlice.Bio)
	require.Equal(t, "tokyo", gotAlice.Location)

	// A pasted @handle is stored without the prefix.
	require.Equal(t, "alice", gotAlice.Weibo)

	// Changing the email address drops the verified flag.
	require.False(t, gotAlice.EmailVerified)
}

func Test_userDomain_ActivityScore(t *testing.T) {
	ctx := testutil.MockContext()
	d := newUserDomainForTest()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, d.userRepo.IncreaseTopicCount(ctx, user.ID))
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, d.userRepo.IncreaseCommentCount(ctx, user.ID))
	}

	got, err := d.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.NumTopics)
	require.Equal(t, 10, got.NumComments)
	require.Equal(t, 25, got.ActivityScore)
}

func Test_userDomain_GetUserTopics(t *testing.T) {
	ctx := testutil.MockContext()
	d := newUserDomainForTest()

	author, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleTopic(ctx, &entity.Topic{AuthorID: author.ID})
	require.NoError(t, err)
	_, err = testutil.SampleTopic(ctx, &entity.Topic{AuthorID: author.ID})
	require.NoError(t, err)

	resp, err := d.GetUserTopics(ctx, &model.GetUserTopicsRequest{UserID: author.ID})
	require.NoError(t, err)
	require.Len(t, resp.Topics, 2)
	require.Equal(t, author.ID, resp.Topics[0].Author.ID)

	_, err = d.GetUserTopics(ctx, &model.GetUserTopicsRequest{UserID: "not-exist"})
	require.Error(t, err)
	require.Equal(t, "Not found user", err.Error())
}
