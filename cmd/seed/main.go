package main

import (
	"context"
	"log"
	"os"
	"time"

	"veilandvow-backend/internal/auth"
	"veilandvow-backend/internal/config"
	"veilandvow-backend/internal/db"
	"veilandvow-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedFilm struct {
	Title           string
	Couple          string
	Location        string
	Tradition       string
	VideoURL        string
	DurationSeconds int
	IsFeatured      bool
	SortOrder       int
}

type seedPost struct {
	Title   string
	Excerpt string
	Body    string
	Tags    []string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	now := time.Now().In(cfg.Timezone)

	filmsSeed := []seedFilm{
		{Title: "Amara & Dev at Cedar Lakes", Couple: "Amara & Dev", Location: "Cedar Lakes Estate, NY", Tradition: "hindu", VideoURL: "https://vimeo.com/veilandvow/amara-dev", DurationSeconds: 312, IsFeatured: true, SortOrder: 1},
		{Title: "Sofia & Marcus in Tulum", Couple: "Sofia & Marcus", Location: "Tulum, Mexico", Tradition: "", VideoURL: "https://vimeo.com/veilandvow/sofia-marcus", DurationSeconds: 287, IsFeatured: true, SortOrder: 2},
		{Title: "Leah & Noa's City Hall Elopement", Couple: "Leah & Noa", Location: "Brooklyn, NY", Tradition: "jewish", VideoURL: "https://vimeo.com/veilandvow/leah-noa", DurationSeconds: 204, SortOrder: 3},
	}

	for _, f := range filmsSeed {
		slug := utils.Slugify(f.Title)
		filter := bson.M{"slug": slug}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":              primitive.NewObjectID().Hex(),
				"slug":             slug,
				"title":            f.Title,
				"couple":           f.Couple,
				"location":         f.Location,
				"tradition":        f.Tradition,
				"video_url":        f.VideoURL,
				"duration_seconds": f.DurationSeconds,
				"is_featured":      f.IsFeatured,
				"is_published":     true,
				"sort_order":       f.SortOrder,
				"created_at":       now,
				"updated_at":       now,
			},
		}
		if _, err := cols.Films.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for film %s: %v", f.Title, err)
		}
	}

	postsSeed := []seedPost{
		{
			Title:   "How We Approach a Wedding Day Timeline",
			Excerpt: "Where the film crew fits into your day, and why golden hour is non-negotiable.",
			Body:    "A wedding film is built in the margins of the day...",
			Tags:    []string{"planning"},
		},
		{
			Title:   "Documentary vs. Cinematic: Picking Your Style",
			Excerpt: "The two schools of wedding filmmaking, and how to tell which one is yours.",
			Body:    "Every couple asks us this in the first call...",
			Tags:    []string{"style", "planning"},
		},
	}

	for _, p := range postsSeed {
		slug := utils.Slugify(p.Title)
		filter := bson.M{"slug": slug}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":          primitive.NewObjectID().Hex(),
				"slug":         slug,
				"title":        p.Title,
				"excerpt":      p.Excerpt,
				"body":         p.Body,
				"tags":         p.Tags,
				"is_published": true,
				"published_at": now,
				"created_at":   now,
				"updated_at":   now,
			},
		}
		if _, err := cols.JournalPosts.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for post %s: %v", p.Title, err)
		}
	}

	// Convenience for first-time setup: print the bcrypt hash the API
	// expects in ADMIN_PASSWORD_HASH.
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatalf("hash admin password: %v", err)
		}
		log.Printf("ADMIN_PASSWORD_HASH=%s", hash)
	}

	log.Println("seed completed")
}
