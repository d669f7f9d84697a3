package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("event not found")
	ErrEmptyField = errors.New("required fields cannot be empty")
	ErrBadDate    = errors.New("invalid date")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

// parseDate accepts the two shapes clients send: an RFC 3339 instant or
// a bare YYYY-MM-DD from a date input control.
func (s *Service) parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, s.location); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, value)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Event, error) {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return Event{}, err
	}

	now := time.Now().In(s.location)
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = CategoryAcademic
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	isHighlighted := false
	if req.IsHighlighted != nil {
		isHighlighted = *req.IsHighlighted
	}

	item := Event{
		ID:            primitive.NewObjectID().Hex(),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Date:          date,
		Time:          strings.TrimSpace(req.Time),
		Location:      strings.TrimSpace(req.Location),
		Image:         strings.TrimSpace(req.Image),
		Category:      category,
		IsActive:      isActive,
		IsHighlighted: isHighlighted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Event{}, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Event, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}

	var empty []string
	for _, field := range []struct {
		key   string
		value *string
	}{
		{"title", req.Title},
		{"description", req.Description},
		{"time", req.Time},
		{"location", req.Location},
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
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			empty = append(empty, "date")
		} else {
			date, err := s.parseDate(*req.Date)
			if err != nil {
				return Event{}, err
			}
			set["date"] = date
		}
	}
	if len(empty) > 0 {
		return Event{}, fmt.Errorf("%w: %s", ErrEmptyField, strings.Join(empty, ", "))
	}

	if req.Image != nil {
		set["image"] = strings.TrimSpace(*req.Image)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if req.IsHighlighted != nil {
		set["isHighlighted"] = *req.IsHighlighted
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
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

// List resolves "upcoming" against the start of the current day, so an
// event later today still counts as upcoming.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	now := time.Now().In(s.location)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	return s.repo.List(ctx, filter, startOfDay)
}
