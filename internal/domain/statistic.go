package domain

import (
	"context"
	"errors"
	"time"

	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/agora-lab/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const (
	leaderboardCacheKey = "statistic:leaderboard"
	userCountCacheKey   = "statistic:user_count"
	nodeIndexCacheKey   = "statistic:node_index"
	hotTopicsCacheKey   = "statistic:hot_topics"
)

// hotTopicWindow is the trailing window that hot topics are counted
// over, one second short of a full day.
const hotTopicWindow = 23*time.Hour + 59*time.Minute + 59*time.Second

type StatisticDomain interface {
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetUserCount(ctx context.Context, req *model.GetUserCountRequest) (*model.GetUserCountResponse, error)
	GetNodeIndex(ctx context.Context, req *model.GetNodeIndexRequest) (*model.GetNodeIndexResponse, error)
	GetHotTopics(ctx context.Context, req *model.GetHotTopicsRequest) (*model.GetHotTopicsResponse, error)
}

type statisticDomain struct {
	userRepo     repository.UserRepository
	topicRepo    repository.TopicRepository
	commentRepo  repository.CommentRepository
	nodeRepo     repository.NodeRepository
	categoryRepo repository.CategoryRepository
	redisClient  xredis.Client
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	topicRepo repository.TopicRepository,
	commentRepo repository.CommentRepository,
	nodeRepo repository.NodeRepository,
	categoryRepo repository.CategoryRepository,
	redisClient xredis.Client,
) StatisticDomain {
	return &statisticDomain{
		userRepo:     userRepo,
		topicRepo:    topicRepo,
		commentRepo:  commentRepo,
		nodeRepo:     nodeRepo,
		categoryRepo: categoryRepo,
		redisClient:  redisClient,
	}
}

func (d *statisticDomain) GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error) {
	var cached model.GetLeaderboardResponse
	if hitCache(ctx, d.redisClient, leaderboardCacheKey, &cached) {
		return &cached, nil
	}

	cfg := xcontext.Configs(ctx).Forum
	users, err := d.userRepo.GetTopByActivityScore(ctx, cfg.LeaderboardSize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := make([]model.User, 0, len(users))
	for _, user := range users {
		clientUsers = append(clientUsers, model.ConvertUser(&user, false))
	}

	resp := &model.GetLeaderboardResponse{
		Users:     clientUsers,
		UserCount: count,
	}

	fillCache(ctx, d.redisClient, leaderboardCacheKey, resp, cfg.ListingCacheTTL)
	return resp, nil
}

func (d *statisticDomain) GetUserCount(ctx context.Context, req *model.GetUserCountRequest) (*model.GetUserCountResponse, error) {
	var cached model.GetUserCountResponse
	if hitCache(ctx, d.redisClient, userCountCacheKey, &cached) {
		return &cached, nil
	}

	count, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetUserCountResponse{UserCount: count}
	fillCache(ctx, d.redisClient, userCountCacheKey, resp,
		xcontext.Configs(ctx).Forum.ListingCacheTTL)
	return resp, nil
}

func (d *statisticDomain) GetNodeIndex(ctx context.Context, req *model.GetNodeIndexRequest) (*model.GetNodeIndexResponse, error) {
	var cached model.GetNodeIndexResponse
	if hitCache(ctx, d.redisClient, nodeIndexCacheKey, &cached) {
		return &cached, nil
	}

	categories, err := d.categoryRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get categories: %v", err)
		return nil, errorx.Unknown
	}

	nodes, err := d.nodeRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get nodes: %v", err)
		return nil, errorx.Unknown
	}

	clientCategories := make([]model.CategoryNodes, 0, len(categories))
	for _, category := range categories {
		group := model.CategoryNodes{CategoryName: category.Name, Nodes: []model.Node{}}
		for _, node := range nodes {
			if node.CategoryID == category.ID {
				group.Nodes = append(group.Nodes, model.ConvertNode(&node))
			}
		}
		clientCategories = append(clientCategories, group)
	}

	resp := &model.GetNodeIndexResponse{Categories: clientCategories}
	fillCache(ctx, d.redisClient, nodeIndexCacheKey, resp,
		xcontext.Configs(ctx).Forum.ListingCacheTTL)
	return resp, nil
}

func (d *statisticDomain) GetHotTopics(ctx context.Context, req *model.GetHotTopicsRequest) (*model.GetHotTopicsResponse, error) {
	var cached model.GetHotTopicsResponse
	if hitCache(ctx, d.redisClient, hotTopicsCacheKey, &cached) {
		return &cached, nil
	}

	cfg := xcontext.Configs(ctx).Forum
	counts, err := d.commentRepo.CountByTopicSince(ctx,
		time.Now().Add(-hotTopicWindow), cfg.HotTopicLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count recent comments: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.TopicID)
	}

	topics, err := d.topicRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get topics: %v", err)
		return nil, errorx.Unknown
	}

	clientTopics, err := convertTopics(ctx, d.userRepo, d.nodeRepo, topics)
	if err != nil {
		return nil, err
	}

	// Keep the most-commented-first order of the count query.
	byID := map[string]model.Topic{}
	for _, topic := range clientTopics {
		byID[topic.ID] = topic
	}

	ordered := make([]model.Topic, 0, len(counts))
	for _, c := range counts {
		if topic, ok := byID[c.TopicID]; ok {
			ordered = append(ordered, topic)
		}
	}

	resp := &model.GetHotTopicsResponse{Topics: ordered}
	fillCache(ctx, d.redisClient, hotTopicsCacheKey, resp, cfg.ListingCacheTTL)
	return resp, nil
}

func hitCache(ctx context.Context, client xredis.Client, key string, v any) bool {
	if client == nil {
		return false
	}

	err := client.GetObj(ctx, key, v)
	if err == nil {
		return true
	}

	if !errors.Is(err, redis.Nil) {
		xcontext.Logger(ctx).Warnf("Cannot read the cache of %s: %v", key, err)
	}

	return false
}

func fillCache(ctx context.Context, client xredis.Client, key string, v any, ttl time.Duration) {
	if client == nil {
		return
	}

	if err := client.SetObj(ctx, key, v, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write the cache of %s: %v", key, err)
	}
}
