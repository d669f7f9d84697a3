// Command seed bootstraps the admin user and, when the collections are
// empty, a small set of sample content.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/DarboeDev/UTGSSA-HUB/internal/auth"
	"github.com/DarboeDev/UTGSSA-HUB/internal/config"
	"github.com/DarboeDev/UTGSSA-HUB/internal/db"
	"github.com/DarboeDev/UTGSSA-HUB/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Error("mongo connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Error("index setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seedAdmin(ctx, cols, log); err != nil {
		log.Error("admin seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seedContent(ctx, cols, log); err != nil {
		log.Error("content seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("seed complete")
}

func seedAdmin(ctx context.Context, cols *db.Collections, log *slog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"passwordHash": hash,
			"role":         models.UserRoleAdmin,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"email":     email,
			"createdAt": now,
		},
	}
	_, err = cols.Users.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	log.Info("admin user seeded", slog.String("email", email))
	return nil
}

func seedContent(ctx context.Context, cols *db.Collections, log *slog.Logger) error {
	now := time.Now()

	samples := []struct {
		name string
		col  *mongo.Collection
		docs []interface{}
	}{
		{
			name: "leaders",
			col:  cols.Leaders,
			docs: []interface{}{
				bson.M{
					"_id":           primitive.NewObjectID().Hex(),
					"name":          "Fatou Ceesay",
					"position":      "President",
					"department":    "Computer Science",
					"year":          "Final Year",
					"bio":           "Leads the association and chairs the executive committee.",
					"email":         "president@utgssa.example",
					"image":         "https://placehold.co/400x400",
					"imagePublicId": "",
					"isExecutive":   true,
					"createdAt":     now,
					"updatedAt":     now,
				},
			},
		},
		{
			name: "events",
			col:  cols.Events,
			docs: []interface{}{
				bson.M{
					"_id":           primitive.NewObjectID().Hex(),
					"title":         "Welcome Orientation",
					"description":   "Orientation session for new science students.",
					"date":          now.AddDate(0, 0, 14),
					"time":          "10:00",
					"location":      "Faraba Banta Campus, Hall 2",
					"category":      "academic",
					"isActive":      true,
					"isHighlighted": true,
					"createdAt":     now,
					"updatedAt":     now,
				},
			},
		},
		{
			name: "blogs",
			col:  cols.Blogs,
			docs: []interface{}{
				bson.M{
					"_id":         primitive.NewObjectID().Hex(),
					"title":       "Getting Started with Research",
					"content":     "A short guide to finding a supervisor and framing a question.",
					"excerpt":     "How to begin your first research project.",
					"author":      "Editorial Team",
					"category":    "research",
					"tags":        []string{"research", "guide"},
					"isPublished": true,
					"likes":       int64(0),
					"createdAt":   now,
					"updatedAt":   now,
				},
			},
		},
		{
			name: "news",
			col:  cols.News,
			docs: []interface{}{
				bson.M{
					"_id":         primitive.NewObjectID().Hex(),
					"title":       "New Academic Year Opens",
					"summary":     "The association welcomes students back for the new academic year.",
					"content":     "The association welcomes students back for the new academic year.",
					"author":      "UTG-SSA",
					"category":    "announcement",
					"isPublished": true,
					"publishDate": now,
					"createdAt":   now,
					"updatedAt":   now,
				},
			},
		},
		{
			name: "resources",
			col:  cols.Resources,
			docs: []interface{}{
				bson.M{
					"_id":           primitive.NewObjectID().Hex(),
					"title":         "Past Questions Archive",
					"description":   "Collected past examination questions.",
					"type":          "link",
					"fileUrl":       "https://example.com/past-questions",
					"filePublicId":  "",
					"department":    "General",
					"year":          "All",
					"downloadCount": int64(0),
					"createdAt":     now,
					"updatedAt":     now,
				},
			},
		},
	}

	for _, sample := range samples {
		count, err := sample.col.CountDocuments(ctx, bson.M{})
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := sample.col.InsertMany(ctx, sample.docs); err != nil {
			return err
		}
		log.Info("seeded sample content", slog.String("collection", sample.name))
	}
	return nil
}
