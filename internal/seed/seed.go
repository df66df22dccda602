// Package seed fills a Blogly database with demo users, posts and tags.
// It is meant for development and tests only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blogly/internal/middleware"
	"blogly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers       int
	PostsPerUser   int
	NumTags        int
	MaxTagsPerPost int
	// MaxDays bounds how far back post timestamps are spread.
	MaxDays int
	// Clean removes every existing row before seeding.
	Clean bool
	// RandSeed makes the generated data reproducible. Zero picks a random seed.
	RandSeed int64
}

// DefaultOptions returns the options used by the seed command.
func DefaultOptions() Options {
	return Options{
		NumUsers:       8,
		PostsPerUser:   3,
		NumTags:        6,
		MaxTagsPerPost: 3,
		MaxDays:        90,
		Clean:          true,
	}
}

// Result counts the rows written by Run.
type Result struct {
	Users int
	Posts int
	Tags  int
	Links int
}

// Seeder builds fake entities and persists them.
type Seeder struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Seeder{db: db, opts: opts, faker: gofakeit.New(seed), now: time.Now}
}

// BuildUser returns an unsaved user with fake profile fields.
func (s *Seeder) BuildUser() *models.User {
	first, last := s.faker.FirstName(), s.faker.LastName()
	return &models.User{
		UserName:  fmt.Sprintf("%s%d", strings.ToLower(s.faker.Username()), s.faker.Number(100, 999)),
		FirstName: first,
		LastName:  last,
		Email:     s.faker.Email(),
		ImageURL:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", s.faker.UUID()),
	}
}

// BuildPost returns an unsaved post for userID dated somewhere in the last MaxDays.
func (s *Seeder) BuildPost(userID uint) *models.Post {
	back := time.Duration(s.faker.Number(0, s.opts.MaxDays*24*60)) * time.Minute
	return &models.Post{
		Title:     strings.TrimSuffix(s.faker.Sentence(5), "."),
		Content:   s.faker.Paragraph(1, 3, 12, "\n"),
		UserID:    userID,
		CreatedAt: s.now().Add(-back),
	}
}

// buildTags returns n unsaved tags with distinct names.
func (s *Seeder) buildTags(n int) []*models.Tag {
	seen := make(map[string]bool, n)
	tags := make([]*models.Tag, 0, n)
	for len(tags) < n {
		name := strings.ToLower(s.faker.HackerNoun())
		if seen[name] {
			name = fmt.Sprintf("%s-%d", name, len(tags)+1)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, &models.Tag{Name: name})
	}
	return tags
}

// pickTags returns up to MaxTagsPerPost distinct tags for one post.
func (s *Seeder) pickTags(tags []*models.Tag) []*models.Tag {
	if len(tags) == 0 || s.opts.MaxTagsPerPost <= 0 {
		return nil
	}
	k := s.faker.Number(0, min(s.opts.MaxTagsPerPost, len(tags)))
	start := s.faker.Number(0, len(tags)-1)
	picked := make([]*models.Tag, 0, k)
	for i := 0; i < k; i++ {
		picked = append(picked, tags[(start+i)%len(tags)])
	}
	return picked
}

// Run seeds the database in a single transaction.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.opts.Clean {
			if err := clearTables(tx); err != nil {
				return err
			}
		}

		users := make([]*models.User, 0, s.opts.NumUsers)
		for i := 0; i < s.opts.NumUsers; i++ {
			users = append(users, s.BuildUser())
		}
		if len(users) > 0 {
			if err := tx.Omit("Posts").Create(&users).Error; err != nil {
				return fmt.Errorf("create users: %w", err)
			}
		}

		posts := make([]*models.Post, 0, len(users)*s.opts.PostsPerUser)
		for _, u := range users {
			for i := 0; i < s.opts.PostsPerUser; i++ {
				posts = append(posts, s.BuildPost(u.ID))
			}
		}
		if len(posts) > 0 {
			if err := tx.Omit("User", "Tags").Create(&posts).Error; err != nil {
				return fmt.Errorf("create posts: %w", err)
			}
		}

		tags := s.buildTags(s.opts.NumTags)
		if len(tags) > 0 {
			if err := tx.Omit("Posts").Create(&tags).Error; err != nil {
				return fmt.Errorf("create tags: %w", err)
			}
		}

		var links []models.PostTag
		for _, p := range posts {
			for _, t := range s.pickTags(tags) {
				links = append(links, models.PostTag{PostID: p.ID, TagID: t.ID})
			}
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return fmt.Errorf("link posts to tags: %w", err)
			}
		}

		res = Result{Users: len(users), Posts: len(posts), Tags: len(tags), Links: len(links)}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	middleware.Logger.InfoContext(ctx, "database seeded",
		slog.Int("users", res.Users),
		slog.Int("posts", res.Posts),
		slog.Int("tags", res.Tags),
		slog.Int("links", res.Links))
	return res, nil
}

// ClearAll removes every Blogly row.
func ClearAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(clearTables)
}

func clearTables(tx *gorm.DB) error {
	for _, model := range []interface{}{&models.PostTag{}, &models.Post{}, &models.Tag{}, &models.User{}} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}
