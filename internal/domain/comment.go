package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/model"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/errorx"
	"github.com/agora-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCommentLength = 1000

var mentionRegexp = regexp.MustCompile(`@([0-9A-Za-z_.]+)`)

type CommentDomain interface {
	CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	topicRepo   repository.TopicRepository
	userRepo    repository.UserRepository
	noticeRepo  repository.NoticeRepository
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	noticeRepo repository.NoticeRepository,
) CommentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		noticeRepo:  noticeRepo,
	}
}

func (d *commentDomain) CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.CreateCommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	if len([]rune(content)) > maxCommentLength {
		return nil, errorx.New(errorx.BadRequest,
			"Comment must not be longer than %d characters", maxCommentLength)
	}

	topic, err := d.topicRepo.GetByID(ctx, req.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found topic")
		}

		xcontext.Logger(ctx).Errorf("Cannot get topic: %v", err)
		return nil, errorx.Unknown
	}

	authorID := xcontext.RequestUserID(ctx)
	now := time.Now()

	latest, err := d.commentRepo.GetLatestByAuthorID(ctx, authorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the latest comment: %v", err)
		return nil, errorx.Unknown
	}

	window := xcontext.Configs(ctx).Forum.DuplicateWindow
	if err == nil && latest.Content == content && now.Sub(latest.CreatedAt) < window {
		return nil, errorx.New(errorx.AlreadyExists, "You have just posted this comment")
	}

	author, err := d.userRepo.GetByID(ctx, authorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the author: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		Content:  content,
		AuthorID: authorID,
		TopicID:  topic.ID,
	}

	err = xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
		if err := d.commentRepo.Create(ctx, comment); err != nil {
			return err
		}

		if err := d.userRepo.IncreaseCommentCount(ctx, authorID); err != nil {
			return err
		}

		if topic.AuthorID != authorID {
			notice := &entity.Notice{
				Base:       entity.Base{ID: uuid.NewString()},
				FromUserID: authorID,
				ToUserID:   topic.AuthorID,
				TopicID:    sql.NullString{String: topic.ID, Valid: true},
				Content:    fmt.Sprintf("%s replied to your topic %s", author.Name, topic.Title),
			}
			if err := d.noticeRepo.Create(ctx, notice); err != nil {
				return err
			}
		}

		if err := d.notifyMentions(ctx, author, topic, content); err != nil {
			return err
		}

		return d.topicRepo.RecordReply(ctx, topic.ID, authorID, now)
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCommentResponse{
		Comment: model.ConvertComment(comment, author),
		TopicID: topic.ID,
	}, nil
}

// notifyMentions fans a notice out to every distinct @-mentioned user
// in the comment. Unknown names, the comment author, and the topic
// author are skipped; the topic author already receives the reply
// notice.
func (d *commentDomain) notifyMentions(
	ctx context.Context, author *entity.User, topic *entity.Topic, content string,
) error {
	seen := map[string]struct{}{}
	for _, match := range mentionRegexp.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		mentioned, err := d.userRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}

		if mentioned.ID == author.ID || mentioned.ID == topic.AuthorID {
			continue
		}

		// A mention notice carries the comment body itself.
		notice := &entity.Notice{
			Base:       entity.Base{ID: uuid.NewString()},
			FromUserID: author.ID,
			ToUserID:   mentioned.ID,
			TopicID:    sql.NullString{String: topic.ID, Valid: true},
			Content:    content,
		}
		if err := d.noticeRepo.Create(ctx, notice); err != nil {
			return err
		}
	}

	return nil
}
