package films

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"veilandvow-backend/internal/utils"
)

var (
	ErrNotFound    = errors.New("film not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func normalizeSlug(slug, title string) string {
	s := strings.TrimSpace(slug)
	if s == "" {
		s = title
	}
	return utils.Slugify(s)
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Film, error) {
	slug := normalizeSlug(req.Slug, req.Title)
	if slug == "" {
		return Film{}, ErrInvalidSlug
	}

	now := time.Now().In(s.location)
	film := Film{
		ID:           primitive.NewObjectID().Hex(),
		Slug:         slug,
		Title:        strings.TrimSpace(req.Title),
		Couple:       strings.TrimSpace(req.Couple),
		Location:     strings.TrimSpace(req.Location),
		Tradition:    strings.TrimSpace(req.Tradition),
		VideoURL:     strings.TrimSpace(req.VideoURL),
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.DurationSeconds != nil {
		film.DurationSeconds = *req.DurationSeconds
	}
	if req.IsFeatured != nil {
		film.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		film.IsPublished = *req.IsPublished
	}
	if req.SortOrder != nil {
		film.SortOrder = *req.SortOrder
	}

	if err := s.repo.Create(ctx, film); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Film{}, ErrSlugExists
		}
		return Film{}, err
	}

	return film, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Film, error) {
	slug := normalizeSlug(req.Slug, req.Title)
	if slug == "" {
		return Film{}, ErrInvalidSlug
	}

	existing, err := s.getByID(ctx, id)
	if err != nil {
		return Film{}, err
	}

	film := Film{
		Slug:            slug,
		Title:           strings.TrimSpace(req.Title),
		Couple:          strings.TrimSpace(req.Couple),
		Location:        strings.TrimSpace(req.Location),
		Tradition:       strings.TrimSpace(req.Tradition),
		VideoURL:        strings.TrimSpace(req.VideoURL),
		ThumbnailURL:    strings.TrimSpace(req.ThumbnailURL),
		DurationSeconds: existing.DurationSeconds,
		IsFeatured:      existing.IsFeatured,
		IsPublished:     existing.IsPublished,
		SortOrder:       existing.SortOrder,
		UpdatedAt:       time.Now().In(s.location),
	}
	if req.DurationSeconds != nil {
		film.DurationSeconds = *req.DurationSeconds
	}
	if req.IsFeatured != nil {
		film.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		film.IsPublished = *req.IsPublished
	}
	if req.SortOrder != nil {
		film.SortOrder = *req.SortOrder
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), film)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Film{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Film{}, ErrSlugExists
		}
		return Film{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *Service) PublicList(ctx context.Context, tradition string, featuredOnly bool, limit, offset int64) ([]Film, int64, error) {
	filter := ListFilter{
		Tradition:     strings.TrimSpace(tradition),
		FeaturedOnly:  featuredOnly,
		PublishedOnly: true,
	}
	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) PublicGetBySlug(ctx context.Context, slug string) (Film, error) {
	film, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Film{}, ErrNotFound
		}
		return Film{}, err
	}
	if !film.IsPublished {
		return Film{}, ErrNotFound
	}
	return film, nil
}

func (s *Service) AdminList(ctx context.Context, limit, offset int64) ([]Film, int64, error) {
	filter := ListFilter{}
	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) getByID(ctx context.Context, id string) (Film, error) {
	film, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Film{}, ErrNotFound
		}
		return Film{}, err
	}
	return film, nil
}
