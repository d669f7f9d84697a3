package blogs

import "time"

const (
	CategoryResearch   = "research"
	CategoryTutorial   = "tutorial"
	CategoryExperience = "experience"
	CategoryOpinion    = "opinion"
	CategoryGeneral    = "general"
)

type Blog struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Content     string    `bson:"content" json:"content"`
	Excerpt     string    `bson:"excerpt" json:"excerpt"`
	Author      string    `bson:"author" json:"author"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Category    string    `bson:"category" json:"category"`
	Tags        []string  `bson:"tags" json:"tags"`
	IsPublished bool      `bson:"isPublished" json:"isPublished"`
	Likes       int64     `bson:"likes" json:"likes"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Excerpt     string   `json:"excerpt" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Image       string   `json:"image"`
	Category    string   `json:"category" validate:"omitempty,oneof=research tutorial experience opinion general"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

// UpdateRequest has no likes field: the counter moves only through the
// public like endpoint.
type UpdateRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Excerpt     *string   `json:"excerpt"`
	Author      *string   `json:"author"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
}

type ListFilter struct {
	Category string
	Tag      string
	Search   string
	Limit    int64
}
