package films

import "time"

// Film is one portfolio entry: a delivered wedding film the studio shows
// on the site.
type Film struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Slug            string    `bson:"slug" json:"slug"`
	Title           string    `bson:"title" json:"title"`
	Couple          string    `bson:"couple" json:"couple"`
	Location        string    `bson:"location,omitempty" json:"location,omitempty"`
	Tradition       string    `bson:"tradition,omitempty" json:"tradition,omitempty"`
	VideoURL        string    `bson:"video_url" json:"video_url"`
	ThumbnailURL    string    `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	DurationSeconds int       `bson:"duration_seconds,omitempty" json:"duration_seconds,omitempty"`
	IsFeatured      bool      `bson:"is_featured" json:"is_featured"`
	IsPublished     bool      `bson:"is_published" json:"is_published"`
	SortOrder       int       `bson:"sort_order" json:"sort_order"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

type UpsertRequest struct {
	Slug            string `json:"slug"`
	Title           string `json:"title" validate:"required"`
	Couple          string `json:"couple" validate:"required"`
	Location        string `json:"location"`
	Tradition       string `json:"tradition"`
	VideoURL        string `json:"video_url" validate:"required,url"`
	ThumbnailURL    string `json:"thumbnail_url" validate:"omitempty,url"`
	DurationSeconds *int   `json:"duration_seconds" validate:"omitempty,gte=0"`
	IsFeatured      *bool  `json:"is_featured"`
	IsPublished     *bool  `json:"is_published"`
	SortOrder       *int   `json:"sort_order" validate:"omitempty,gte=0"`
}

type ListFilter struct {
	Tradition     string
	FeaturedOnly  bool
	PublishedOnly bool
}
