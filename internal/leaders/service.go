package leaders

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
	ErrNotFound   = errors.New("leader not found")
	ErrEmptyField = errors.New("required fields cannot be empty")
)

// AssetDestroyer releases an externally hosted file. Failures are
// logged, never propagated: asset cleanup is best-effort.
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

func (s *Service) Create(ctx context.Context, req CreateRequest) (Leader, error) {
	now := time.Now().In(s.location)
	isExecutive := false
	if req.IsExecutive != nil {
		isExecutive = *req.IsExecutive
	}

	item := Leader{
		ID:            primitive.NewObjectID().Hex(),
		Name:          strings.TrimSpace(req.Name),
		Position:      strings.TrimSpace(req.Position),
		Department:    strings.TrimSpace(req.Department),
		Year:          strings.TrimSpace(req.Year),
		Bio:           strings.TrimSpace(req.Bio),
		Email:         strings.TrimSpace(req.Email),
		Image:         strings.TrimSpace(req.Image),
		ImagePublicID: strings.TrimSpace(req.ImagePublicID),
		LinkedIn:      strings.TrimSpace(req.LinkedIn),
		IsExecutive:   isExecutive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Leader{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (Leader, error) {
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Leader{}, ErrNotFound
		}
		return Leader{}, err
	}
	return item, nil
}

// Update applies only the fields present in the request. An explicit
// empty string on a required field is rejected so the edit path can
// never strip a leader down below the creation contract.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Leader, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}

	var empty []string
	required := []struct {
		key   string
		value *string
	}{
		{"name", req.Name},
		{"position", req.Position},
		{"department", req.Department},
		{"year", req.Year},
		{"bio", req.Bio},
		{"email", req.Email},
		{"image", req.Image},
		{"imagePublicId", req.ImagePublicID},
	}
	for _, field := range required {
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
	if len(empty) > 0 {
		return Leader{}, fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(empty, ", "))
	}

	if req.LinkedIn != nil {
		set["linkedIn"] = strings.TrimSpace(*req.LinkedIn)
	}
	if req.IsExecutive != nil {
		set["isExecutive"] = *req.IsExecutive
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Leader{}, ErrNotFound
		}
		return Leader{}, err
	}
	return updated, nil
}

// Delete releases the hosted portrait before removing the document. A
// failed asset deletion is logged and the document is removed anyway.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}

	if s.assets != nil && item.ImagePublicID != "" {
		if err := s.assets.Destroy(ctx, item.ImagePublicID); err != nil {
			s.log.Warn("leader delete: asset cleanup failed",
				slog.String("leader_id", id),
				slog.String("public_id", item.ImagePublicID),
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Leader, error) {
	return s.repo.List(ctx, filter)
}
