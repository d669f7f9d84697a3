package events

import "time"

const (
	CategoryAcademic    = "academic"
	CategorySocial      = "social"
	CategoryWorkshop    = "workshop"
	CategoryCompetition = "competition"
	CategoryMeeting     = "meeting"
)

type Event struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	Date          time.Time `bson:"date" json:"date"`
	Time          string    `bson:"time" json:"time"`
	Location      string    `bson:"location" json:"location"`
	Image         string    `bson:"image,omitempty" json:"image,omitempty"`
	Category      string    `bson:"category" json:"category"`
	IsActive      bool      `bson:"isActive" json:"isActive"`
	IsHighlighted bool      `bson:"isHighlighted" json:"isHighlighted"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Date          string `json:"date" validate:"required"`
	Time          string `json:"time" validate:"required,clock"`
	Location      string `json:"location" validate:"required"`
	Image         string `json:"image"`
	Category      string `json:"category" validate:"omitempty,oneof=academic social workshop competition meeting"`
	IsActive      *bool  `json:"isActive"`
	IsHighlighted *bool  `json:"isHighlighted"`
}

type UpdateRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Date          *string `json:"date"`
	Time          *string `json:"time"`
	Location      *string `json:"location"`
	Image         *string `json:"image"`
	Category      *string `json:"category"`
	IsActive      *bool   `json:"isActive"`
	IsHighlighted *bool   `json:"isHighlighted"`
}

type ListFilter struct {
	Category     string
	UpcomingOnly bool
	Limit        int64
}
