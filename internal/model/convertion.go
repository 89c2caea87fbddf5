package model

import (
	"time"

	"github.com/agora-lab/backend/internal/entity"
)

func ConvertUser(user *entity.User, includePrivate bool) User {
	if user == nil {
		return User{}
	}

	clientUser := User{
		ID:            user.ID,
		Name:          user.Name,
		Bio:           user.Bio,
		Location:      user.Location,
		Website:       user.Website,
		Weibo:         user.Weibo,
		AvatarURL:     user.AvatarURL,
		ActivityScore: user.ActivityScore,
		NumTopics:     user.NumTopics,
		NumComments:   user.NumComments,
		EmailVerified: user.EmailVerified,
	}

	if includePrivate {
		clientUser.Email = user.Email
		clientUser.IsAdmin = user.IsAdmin
	}

	return clientUser
}

func ConvertNode(node *entity.Node) Node {
	if node == nil {
		return Node{}
	}

	return Node{
		ID:        node.ID,
		Name:      node.Name,
		Slug:      node.Slug,
		NumTopics: node.NumTopics,
	}
}

func ConvertTopic(topic *entity.Topic, node *entity.Node, author *entity.User, lastReplier *entity.User) Topic {
	if topic == nil {
		return Topic{}
	}

	clientTopic := Topic{
		ID:          topic.ID,
		Title:       topic.Title,
		Content:     topic.Content,
		Node:        ConvertNode(node),
		Author:      ConvertUser(author, false),
		NumViews:    topic.NumViews,
		NumComments: topic.NumComments,
		CreatedAt:   topic.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   topic.UpdatedAt.Format(time.RFC3339),
	}

	if lastReplier != nil {
		replier := ConvertUser(lastReplier, false)
		clientTopic.LastReplier = &replier
	}

	return clientTopic
}

func ConvertComment(comment *entity.Comment, author *entity.User) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    ConvertUser(author, false),
		TopicID:   comment.TopicID,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertNotice(notice *entity.Notice, fromUser *entity.User) Notice {
	if notice == nil {
		return Notice{}
	}

	return Notice{
		ID:        notice.ID,
		FromUser:  ConvertUser(fromUser, false),
		TopicID:   notice.TopicID.String,
		Content:   notice.Content,
		IsRead:    notice.IsRead,
		CreatedAt: notice.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertSite(site *entity.Site) Site {
	if site == nil {
		return Site{}
	}

	return Site{
		ID:          site.ID,
		Name:        site.Name,
		URL:         site.URL,
		Description: site.Description,
	}
}
