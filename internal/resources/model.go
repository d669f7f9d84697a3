package resources

import "time"

const (
	TypePDF      = "pdf"
	TypeDocument = "document"
	TypeLink     = "link"
	TypeVideo    = "video"
)

// ValidTypes is the full resource type enum, in the order error
// messages list it.
var ValidTypes = []string{TypePDF, TypeDocument, TypeLink, TypeVideo}

// IsUploadedType reports whether the resource's file lives on the asset
// host (pdf/document) rather than being an external link.
func IsUploadedType(t string) bool {
	return t == TypePDF || t == TypeDocument
}

type Resource struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	Type          string    `bson:"type" json:"type"`
	FileURL       string    `bson:"fileUrl" json:"fileUrl"`
	FilePublicID  string    `bson:"filePublicId" json:"filePublicId"`
	Department    string    `bson:"department" json:"department"`
	Year          string    `bson:"year" json:"year"`
	DownloadCount int64     `bson:"downloadCount" json:"downloadCount"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Type         string `json:"type" validate:"required,oneof=pdf document link video"`
	FileURL      string `json:"fileUrl" validate:"required"`
	FilePublicID string `json:"filePublicId"`
	Department   string `json:"department" validate:"required"`
	Year         string `json:"year" validate:"required"`
}

// UpdateRequest omits downloadCount: the counter moves only through the
// download endpoint.
type UpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Type         *string `json:"type"`
	FileURL      *string `json:"fileUrl"`
	FilePublicID *string `json:"filePublicId"`
	Department   *string `json:"department"`
	Year         *string `json:"year"`
}

type ListFilter struct {
	Department string
	Year       string
	Type       string
	Limit      int64
}
