package journal

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
	ErrNotFound    = errors.New("post not found")
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

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Post, error) {
	slug := normalizeSlug(req.Slug, req.Title)
	if slug == "" {
		return Post{}, ErrInvalidSlug
	}

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	now := time.Now().In(s.location)
	post := Post{
		ID:          primitive.NewObjectID().Hex(),
		Slug:        slug,
		Title:       strings.TrimSpace(req.Title),
		Excerpt:     strings.TrimSpace(req.Excerpt),
		Body:        req.Body,
		CoverImage:  strings.TrimSpace(req.CoverImage),
		Tags:        req.Tags,
		IsPublished: isPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if isPublished {
		post.PublishedAt = now
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Post{}, ErrSlugExists
		}
		return Post{}, err
	}

	return post, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Post, error) {
	slug := normalizeSlug(req.Slug, req.Title)
	if slug == "" {
		return Post{}, ErrInvalidSlug
	}

	existing, err := s.getByID(ctx, id)
	if err != nil {
		return Post{}, err
	}

	isPublished := existing.IsPublished
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	now := time.Now().In(s.location)
	post := Post{
		Slug:        slug,
		Title:       strings.TrimSpace(req.Title),
		Excerpt:     strings.TrimSpace(req.Excerpt),
		Body:        req.Body,
		CoverImage:  strings.TrimSpace(req.CoverImage),
		Tags:        req.Tags,
		IsPublished: isPublished,
		PublishedAt: existing.PublishedAt,
		UpdatedAt:   now,
	}
	if isPublished && existing.PublishedAt.IsZero() {
		post.PublishedAt = now
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Post{}, ErrSlugExists
		}
		return Post{}, err
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

func (s *Service) PublicList(ctx context.Context, tag string, limit, offset int64) ([]Post, int64, error) {
	filter := ListFilter{Tag: strings.TrimSpace(tag), PublishedOnly: true}
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

func (s *Service) PublicGetBySlug(ctx context.Context, slug string) (Post, error) {
	post, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	if !post.IsPublished {
		return Post{}, ErrNotFound
	}
	return post, nil
}

func (s *Service) AdminList(ctx context.Context, limit, offset int64) ([]Post, int64, error) {
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

func (s *Service) getByID(ctx context.Context, id string) (Post, error) {
	post, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return post, nil
}
