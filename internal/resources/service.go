package resources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrEmptyField = errors.New("required fields cannot be empty")
	ErrBadType    = fmt.Errorf("Invalid type. Must be one of: %s", strings.Join(ValidTypes, ", "))
)

type AssetDestroyer interface {
	Destroy(ctx context.Context, publicID string) error
}

type Service struct {
	repo     Repository
	assets   AssetDestroyer
	location *time.Location
	log      *slog.Logger
}

func NewService(repo Repository, destroyer AssetDestroyer, location *time.Location, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		assets:   destroyer,
		location: location,
		log:      log,
	}
}

func validType(t string) bool {
	for _, valid := range ValidTypes {
		if t == valid {
			return true
		}
	}
	return false
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Resource, error) {
	now := time.Now().In(s.location)

	item := Resource{
		ID:            primitive.NewObjectID().Hex(),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Type:          strings.TrimSpace(req.Type),
		FileURL:       strings.TrimSpace(req.FileURL),
		FilePublicID:  strings.TrimSpace(req.FilePublicID),
		Department:    strings.TrimSpace(req.Department),
		Year:          strings.TrimSpace(req.Year),
		DownloadCount: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Resource{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (Resource, error) {
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resource{}, ErrNotFound
		}
		return Resource{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Resource, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}

	var empty []string
	for _, field := range []struct {
		key   string
		value *string
	}{
		{"title", req.Title},
		{"fileUrl", req.FileURL},
		{"department", req.Department},
		{"year", req.Year},
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
	if req.Type != nil {
		trimmed := strings.TrimSpace(*req.Type)
		if trimmed == "" {
			empty = append(empty, "type")
		} else if !validType(trimmed) {
			return Resource{}, ErrBadType
		} else {
			set["type"] = trimmed
		}
	}
	if len(empty) > 0 {
		return Resource{}, fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(empty, ", "))
	}

	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.FilePublicID != nil {
		set["filePublicId"] = strings.TrimSpace(*req.FilePublicID)
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resource{}, ErrNotFound
		}
		return Resource{}, err
	}
	return updated, nil
}

// Delete releases the hosted file first when there is one. Asset
// cleanup failures are logged and never block document removal.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	if s.assets != nil && item.FilePublicID != "" {
		if err := s.assets.Destroy(ctx, item.FilePublicID); err != nil {
			s.log.Warn("resource delete: asset cleanup failed",
				slog.String("resource_id", id),
				slog.String("public_id", item.FilePublicID),
				slog.String("error", err.Error()))
		}
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Resource, error) {
	filter.Department = strings.TrimSpace(filter.Department)
	filter.Year = strings.TrimSpace(filter.Year)
	filter.Type = strings.TrimSpace(filter.Type)
	return s.repo.List(ctx, filter)
}

// Download counts the access and returns the resource so the handler
// can redirect to its file URL.
func (s *Service) Download(ctx context.Context, id string) (Resource, error) {
	item, err := s.repo.IncrementDownloads(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resource{}, ErrNotFound
		}
		return Resource{}, err
	}
	return item, nil
}
