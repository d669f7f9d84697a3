package news

import "time"

const (
	CategoryAnnouncement = "announcement"
	CategoryAchievement  = "achievement"
	CategoryEvent        = "event"
	CategoryGeneral      = "general"
)

// DefaultAuthor is attributed when the author field is omitted.
const DefaultAuthor = "UTG-SSA"

type News struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Summary     string    `bson:"summary" json:"summary"`
	Content     string    `bson:"content" json:"content"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Author      string    `bson:"author" json:"author"`
	Category    string    `bson:"category" json:"category"`
	IsPublished bool      `bson:"isPublished" json:"isPublished"`
	PublishDate time.Time `bson:"publishDate" json:"publishDate"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Summary     string `json:"summary"`
	Image       string `json:"image"`
	Author      string `json:"author"`
	Category    string `json:"category" validate:"omitempty,oneof=announcement achievement event general"`
	IsPublished *bool  `json:"isPublished"`
}

type UpdateRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Summary     *string `json:"summary"`
	Image       *string `json:"image"`
	Author      *string `json:"author"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"isPublished"`
}

type ListFilter struct {
	Category string
	Limit    int64
}
