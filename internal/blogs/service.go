package blogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("blog not found")
	ErrEmptyField = errors.New("required fields cannot be empty")
)

type Service struct {
	repo     Repository
	location *time.Location
	policy   *bluemonday.Policy
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
		policy:   bluemonday.UGCPolicy(),
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Blog, error) {
	now := time.Now().In(s.location)
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = CategoryGeneral
	}
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	item := Blog{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Content:     s.policy.Sanitize(req.Content),
		Excerpt:     strings.TrimSpace(req.Excerpt),
		Author:      strings.TrimSpace(req.Author),
		Image:       strings.TrimSpace(req.Image),
		Category:    category,
		Tags:        cleanTags(req.Tags),
		IsPublished: isPublished,
		Likes:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Blog{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (Blog, error) {
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Blog{}, ErrNotFound
		}
		return Blog{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Blog, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}

	var empty []string
	for _, field := range []struct {
		key   string
		value *string
	}{
		{"title", req.Title},
		{"excerpt", req.Excerpt},
		{"author", req.Author},
	} {
		if field.value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*field.value)
		if trimmed == "" {
			empty = append(empty, field.key)
			continue
		}
		set[field.key] = trimmed
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			empty = append(empty, "content")
		} else {
			set["content"] = s.policy.Sanitize(*req.Content)
		}
	}
	if len(empty) > 0 {
		return Blog{}, fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(empty, ", "))
	}

	if req.Image != nil {
		set["image"] = strings.TrimSpace(*req.Image)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		set["tags"] = cleanTags(*req.Tags)
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Blog{}, ErrNotFound
		}
		return Blog{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Blog, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Tag = strings.TrimSpace(filter.Tag)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// Like bumps the counter by exactly one and returns the new value.
func (s *Service) Like(ctx context.Context, id string) (int64, error) {
	likes, err := s.repo.IncrementLikes(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}
