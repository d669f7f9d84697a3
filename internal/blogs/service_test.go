package blogs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type stubRepo struct {
	items   map[string]Blog
	lastSet bson.M
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[string]Blog{}}
}

func (r *stubRepo) Create(ctx context.Context, item Blog) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id string) (Blog, error) {
	item, ok := r.items[id]
	if !ok {
		return Blog{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (r *stubRepo) Update(ctx context.Context, id string, set bson.M) (Blog, error) {
	r.lastSet = set
	item, ok := r.items[id]
	if !ok {
		return Blog{}, mongo.ErrNoDocuments
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

func (r *stubRepo) List(ctx context.Context, filter ListFilter) ([]Blog, error) {
	items := make([]Blog, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	return items, nil
}

func (r *stubRepo) IncrementLikes(ctx context.Context, id string) (int64, error) {
	item, ok := r.items[id]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	item.Likes++
	r.items[id] = item
	return item.Likes, nil
}

func strPtr(v string) *string { return &v }

func TestCreateDefaultsAndTags(t *testing.T) {
	svc := NewService(newStubRepo(), time.UTC)

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:   "First Post",
		Content: "plain text body",
		Excerpt: "short",
		Author:  "Lamin",
		Tags:    []string{" go ", "", "backend", "  "},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Category != CategoryGeneral {
		t.Fatalf("category should default to %q, got %q", CategoryGeneral, created.Category)
	}
	if !created.IsPublished {
		t.Fatalf("isPublished should default to true")
	}
	if created.Likes != 0 {
		t.Fatalf("likes should start at zero, got %d", created.Likes)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "go" || created.Tags[1] != "backend" {
		t.Fatalf("expected cleaned tags [go backend], got %v", created.Tags)
	}
}

func TestCreateSanitizesContent(t *testing.T) {
	svc := NewService(newStubRepo(), time.UTC)

	created, err := svc.Create(context.Background(), CreateRequest{
		Title:   "Post",
		Content: `<p>hello</p><script>alert("x")</script>`,
		Excerpt: "short",
		Author:  "Lamin",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if strings.Contains(created.Content, "<script>") {
		t.Fatalf("script tag survived sanitization: %q", created.Content)
	}
	if !strings.Contains(created.Content, "<p>hello</p>") {
		t.Fatalf("benign markup should survive, got %q", created.Content)
	}
}

func TestUpdateRejectsEmptyRequired(t *testing.T) {
	repo := newStubRepo()
	repo.items["b1"] = Blog{ID: "b1"}
	svc := NewService(repo, time.UTC)

	_, err := svc.Update(context.Background(), "b1", UpdateRequest{
		Title:   strPtr(""),
		Content: strPtr("   "),
	})
	if !errors.Is(err, ErrEmptyField) {
		t.Fatalf("expected ErrEmptyField, got %v", err)
	}
	for _, field := range []string{"title", "content"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error %q should name %q", err.Error(), field)
		}
	}
}

func TestUpdateReplacesTags(t *testing.T) {
	repo := newStubRepo()
	repo.items["b1"] = Blog{ID: "b1", Tags: []string{"old"}}
	svc := NewService(repo, time.UTC)

	tags := []string{" a ", "b", ""}
	_, err := svc.Update(context.Background(), "b1", UpdateRequest{Tags: &tags})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	set, ok := repo.lastSet["tags"].([]string)
	if !ok {
		t.Fatalf("tags not set: %v", repo.lastSet)
	}
	if len(set) != 2 || set[0] != "a" || set[1] != "b" {
		t.Fatalf("expected cleaned tags [a b], got %v", set)
	}
}

func TestLikeIncrements(t *testing.T) {
	repo := newStubRepo()
	repo.items["b1"] = Blog{ID: "b1", Likes: 4}
	svc := NewService(repo, time.UTC)

	likes, err := svc.Like(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if likes != 5 {
		t.Fatalf("expected 5 likes, got %d", likes)
	}
}

func TestLikeNotFound(t *testing.T) {
	svc := NewService(newStubRepo(), time.UTC)
	if _, err := svc.Like(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
