package films

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, film Film) error
	Update(ctx context.Context, id string, film Film) (Film, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Film, error)
	GetBySlug(ctx context.Context, slug string) (Film, error)
	List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Film, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, film Film) error {
	_, err := r.col.InsertOne(ctx, film)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, film Film) (Film, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$set": bson.M{
			"slug":             film.Slug,
			"title":            film.Title,
			"couple":           film.Couple,
			"location":         film.Location,
			"tradition":        film.Tradition,
			"video_url":        film.VideoURL,
			"thumbnail_url":    film.ThumbnailURL,
			"duration_seconds": film.DurationSeconds,
			"is_featured":      film.IsFeatured,
			"is_published":     film.IsPublished,
			"sort_order":       film.SortOrder,
			"updated_at":       film.UpdatedAt,
		},
	}

	var updated Film
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Film{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Film, error) {
	var film Film
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&film); err != nil {
		return Film{}, err
	}
	return film, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Film, error) {
	var film Film
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&film); err != nil {
		return Film{}, err
	}
	return film, nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Film, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, r.filterToBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Film, 0)
	for cursor.Next(ctx) {
		var film Film
		if err := cursor.Decode(&film); err != nil {
			return nil, err
		}
		items = append(items, film)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, r.filterToBSON(filter))
}

func (r *MongoRepository) filterToBSON(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.PublishedOnly {
		query["is_published"] = true
	}
	if filter.FeaturedOnly {
		query["is_featured"] = true
	}
	if filter.Tradition != "" {
		query["tradition"] = filter.Tradition
	}
	return query
}
