package domain

import (
	"context"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
)

func clampLimit(ctx context.Context, limit int) int {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit <= 0 {
		return cfg.DefaultLimit
	}

	if limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}

	return limit
}

// convertTopics hydrates a page of topics with their nodes, authors,
// and last repliers using one user query for the whole page.
func convertTopics(
	ctx context.Context,
	userRepo repository.UserRepository,
	nodeRepo repository.NodeRepository,
	topics []entity.Topic,
) ([]model.Topic, error) {
	userIDSet := map[string]struct{}{}
	for _, topic := range topics {
		userIDSet[topic.AuthorID] = struct{}{}
		if topic.LastReplierID.Valid {
			userIDSet[topic.LastReplierID.String] = struct{}{}
		}
	}

	userIDs := make([]string, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	users, err := userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userByID := map[string]entity.User{}
	for _, user := range users {
		userByID[user.ID] = user
	}

	nodeByID := map[string]*entity.Node{}
	for _, topic := range topics {
		if _, ok := nodeByID[topic.NodeID]; ok {
			continue
		}

		node, err := nodeRepo.GetByID(ctx, topic.NodeID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get node: %v", err)
			return nil, errorx.Unknown
		}

		nodeByID[topic.NodeID] = node
	}

	clientTopics := make([]model.Topic, 0, len(topics))
	for _, topic := range topics {
		var author *entity.User
		if u, ok := userByID[topic.AuthorID]; ok {
			author = &u
		}

		var lastReplier *entity.User
		if topic.LastReplierID.Valid {
			if u, ok := userByID[topic.LastReplierID.String]; ok {
				lastReplier = &u
			}
		}

		clientTopics = append(clientTopics,
			model.ConvertTopic(&topic, nodeByID[topic.NodeID], author, lastReplier))
	}

	return clientTopics, nil
}
