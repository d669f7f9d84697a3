package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type stubRepo struct {
	items   map[string]Event
	lastSet bson.M
	lastNow time.Time
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[string]Event{}}
}

func (r *stubRepo) Create(ctx context.Context, item Event) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id string) (Event, error) {
	item, ok := r.items[id]
	if !ok {
		return Event{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (r *stubRepo) Update(ctx context.Context, id string, set bson.M) (Event, error) {
	r.lastSet = set
	item, ok := r.items[id]
	if !ok {
		return Event{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (r *stubRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *stubRepo) List(ctx context.Context, filter ListFilter, now time.Time) ([]Event, error) {
	r.lastNow = now
	items := make([]Event, 0, len(r.items))
	for _, item := range r.items {
		if filter.UpcomingOnly && item.Date.Before(now) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func strPtr(v string) *string { return &v }

func TestCreateDefaults(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, time.UTC)

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:       "Science Fair",
		Description: "Annual fair",
		Date:        "2026-10-01",
		Time:        "09:30",
		Location:    "Main Hall",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Category != CategoryAcademic {
		t.Fatalf("category should default to %q, got %q", CategoryAcademic, created.Category)
	}
	if !created.IsActive {
		t.Fatalf("isActive should default to true")
	}
	if created.IsHighlighted {
		t.Fatalf("isHighlighted should default to false")
	}
	want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if !created.Date.Equal(want) {
		t.Fatalf("expected date %v, got %v", want, created.Date)
	}
}

func TestCreateAcceptsRFC3339Date(t *testing.T) {
	svc := NewService(newStubRepo(), time.UTC)

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:       "Meetup",
		Description: "desc",
		Date:        "2026-10-01T14:00:00Z",
		Time:        "14:00",
		Location:    "Lab 1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	want := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	if !created.Date.Equal(want) {
		t.Fatalf("expected date %v, got %v", want, created.Date)
	}
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc := NewService(newStubRepo(), time.UTC)

	_, err := svc.Create(context.Background(), CreateRequest{
		Title:       "Meetup",
		Description: "desc",
		Date:        "01/10/2026",
		Time:        "14:00",
		Location:    "Lab 1",
	})
	if !errors.Is(err, ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
}

func TestUpdateRejectsEmptyRequired(t *testing.T) {
	repo := newStubRepo()
	repo.items["e1"] = Event{ID: "e1"}
	svc := NewService(repo, time.UTC)

	_, err := svc.Update(context.Background(), "e1", UpdateRequest{Title: strPtr("  ")})
	if !errors.Is(err, ErrEmptyField) {
		t.Fatalf("expected ErrEmptyField, got %v", err)
	}
}

func TestUpdateParsesDate(t *testing.T) {
	repo := newStubRepo()
	repo.items["e1"] = Event{ID: "e1"}
	svc := NewService(repo, time.UTC)

	_, err := svc.Update(context.Background(), "e1", UpdateRequest{Date: strPtr("2026-12-24")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	date, ok := repo.lastSet["date"].(time.Time)
	if !ok {
		t.Fatalf("date not set as time.Time: %v", repo.lastSet["date"])
	}
	want := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, date)
	}
}

func TestListUpcomingUsesStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Banjul")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	repo := newStubRepo()
	svc := NewService(repo, loc)

	_, err = svc.List(context.Background(), ListFilter{UpcomingOnly: true})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	now := time.Now().In(loc)
	wantStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if !repo.lastNow.Equal(wantStart) {
		t.Fatalf("expected cutoff %v, got %v", wantStart, repo.lastNow)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc := NewService(newStubRepo(), time.UTC)
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
