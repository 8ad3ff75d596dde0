package journal

import "time"

// Post is one journal entry (film premieres, planning guides, cultural
// wedding features).
type Post struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Slug        string    `bson:"slug" json:"slug"`
	Title       string    `bson:"title" json:"title"`
	Excerpt     string    `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Body        string    `bson:"body" json:"body"`
	CoverImage  string    `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	IsPublished bool      `bson:"is_published" json:"is_published"`
	PublishedAt time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title" validate:"required"`
	Excerpt     string   `json:"excerpt"`
	Body        string   `json:"body" validate:"required"`
	CoverImage  string   `json:"cover_image"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"is_published"`
}

type ListFilter struct {
	Tag           string
	PublishedOnly bool
}
