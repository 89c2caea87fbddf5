package testutil

import (
	"context"
	"reflect"

	"github.com/agora-lab/backend/internal/entity"
	"github.com/agora-lab/backend/internal/repository"
	"github.com/agora-lab/backend/pkg/crypto"
	"github.com/google/uuid"
)

// SampleUser creates a user with randomized identity fields. Non-zero
// fields of init overwrite the sample before it is persisted.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	name := "u" + uuid.NewString()[:8]
	hashed, err := crypto.HashPassword("password")
	if err != nil {
		return entity.User{}, err
	}

	sample := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hashed,
		IsActive:     true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleNode creates a node inside a fresh category.
func SampleNode(ctx context.Context, init *entity.Node) (entity.Node, error) {
	category := &entity.Category{
		Base: entity.Base{ID: uuid.NewString()},
		Name: "c" + uuid.NewString()[:8],
	}
	if err := repository.NewCategoryRepository().Create(ctx, category); err != nil {
		return entity.Node{}, err
	}

	sample := &entity.Node{
		Base:       entity.Base{ID: uuid.NewString()},
		Name:       "n" + uuid.NewString()[:8],
		Slug:       "s" + uuid.NewString()[:8],
		CategoryID: category.ID,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewNodeRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleTopic creates a topic. When init leaves NodeID or AuthorID
// empty, a sample node or user is created for it.
func SampleTopic(ctx context.Context, init *entity.Topic) (entity.Topic, error) {
	sample := &entity.Topic{
		Base:  entity.Base{ID: uuid.NewString()},
		Title: "topic " + uuid.NewString()[:8],
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.NodeID == "" {
		node, err := SampleNode(ctx, nil)
		if err != nil {
			return *sample, err
		}
		sample.NodeID = node.ID
	}

	if sample.AuthorID == "" {
		user, err := SampleUser(ctx, nil)
		if err != nil {
			return *sample, err
		}
		sample.AuthorID = user.ID
	}

	if err := repository.NewTopicRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
