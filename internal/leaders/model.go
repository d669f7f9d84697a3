package leaders

import "time"

type Leader struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Position      string    `bson:"position" json:"position"`
	Department    string    `bson:"department" json:"department"`
	Year          string    `bson:"year" json:"year"`
	Bio           string    `bson:"bio" json:"bio"`
	Email         string    `bson:"email" json:"email"`
	Image         string    `bson:"image" json:"image"`
	ImagePublicID string    `bson:"imagePublicId" json:"imagePublicId"`
	LinkedIn      string    `bson:"linkedIn,omitempty" json:"linkedIn,omitempty"`
	IsExecutive   bool      `bson:"isExecutive" json:"isExecutive"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name          string `json:"name" validate:"required"`
	Position      string `json:"position" validate:"required"`
	Department    string `json:"department" validate:"required"`
	Year          string `json:"year" validate:"required"`
	Bio           string `json:"bio" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Image         string `json:"image" validate:"required"`
	ImagePublicID string `json:"imagePublicId" validate:"required"`
	LinkedIn      string `json:"linkedIn"`
	IsExecutive   *bool  `json:"isExecutive"`
}

// UpdateRequest carries only the fields present in the request body.
// A nil pointer means "leave unchanged".
type UpdateRequest struct {
	Name          *string `json:"name"`
	Position      *string `json:"position"`
	Department    *string `json:"department"`
	Year          *string `json:"year"`
	Bio           *string `json:"bio"`
	Email         *string `json:"email"`
	Image         *string `json:"image"`
	ImagePublicID *string `json:"imagePublicId"`
	LinkedIn      *string `json:"linkedIn"`
	IsExecutive   *bool   `json:"isExecutive"`
}

type ListFilter struct {
	Limit int64
}
