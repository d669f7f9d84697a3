package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("news not found")
	ErrEmptyField = errors.New("required fields cannot be empty")
)

const summaryRunes = 150

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

// deriveSummary takes the first ~150 characters of the content when no
// summary was supplied. Rune-safe so multi-byte text never splits.
func deriveSummary(content string) string {
	if utf8.RuneCountInString(content) <= summaryRunes {
		return content
	}
	runes := []rune(content)
	return string(runes[:summaryRunes]) + "..."
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (News, error) {
	now := time.Now().In(s.location)
	content := s.policy.Sanitize(req.Content)
	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		summary = deriveSummary(content)
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = DefaultAuthor
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = CategoryGeneral
	}
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	item := News{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Summary:     summary,
		Content:     content,
		Image:       strings.TrimSpace(req.Image),
		Author:      author,
		Category:    category,
		IsPublished: isPublished,
		PublishDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return News{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (News, error) {
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return News{}, ErrNotFound
		}
		return News{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (News, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}

	var empty []string
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			empty = append(empty, "title")
		} else {
			set["title"] = trimmed
		}
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			empty = append(empty, "content")
		} else {
			set["content"] = s.policy.Sanitize(*req.Content)
		}
	}
	if len(empty) > 0 {
		return News{}, fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(empty, ", "))
	}

	if req.Summary != nil {
		set["summary"] = strings.TrimSpace(*req.Summary)
	}
	if req.Image != nil {
		set["image"] = strings.TrimSpace(*req.Image)
	}
	if req.Author != nil && strings.TrimSpace(*req.Author) != "" {
		set["author"] = strings.TrimSpace(*req.Author)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return News{}, ErrNotFound
		}
		return News{}, err
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]News, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.List(ctx, filter)
}
