package repository

import (
	"context"

	"blogly/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// GetByID loads the post with its author and tags.
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// ListRecent returns up to limit posts, newest first, with authors loaded.
	ListRecent(ctx context.Context, limit int) ([]models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	// Create inserts the post for post.UserID. A missing user is NOT_FOUND.
	Create(ctx context.Context, post *models.Post) error
	// Update overwrites title and content only.
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and its tag links and returns the owner's id.
	Delete(ctx context.Context, id uint) (uint, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := traced(ctx, "posts", "GetByID", func(ctx context.Context) error {
		err := r.db.WithContext(ctx).
			Preload("User").
			Preload("Tags", func(db *gorm.DB) *gorm.DB {
				return db.Order("name ASC")
			}).
			First(&post, id).Error
		if err != nil {
			return notFoundOr(err, "Post", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 5
	}
	var posts []models.Post
	err := traced(ctx, "posts", "ListRecent", func(ctx context.Context) error {
		return newestFirst(r.db.WithContext(ctx)).
			Preload("User").
			Limit(limit).
			Find(&posts).Error
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := traced(ctx, "posts", "List", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("id ASC").Find(&posts).Error
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return traced(ctx, "posts", "Create", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var owner models.User
			if err := tx.First(&owner, post.UserID).Error; err != nil {
				return notFoundOr(err, "User", post.UserID)
			}
			if err := tx.Omit("User", "Tags").Create(post).Error; err != nil {
				return err
			}
			post.User = owner
			return nil
		})
	})
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return traced(ctx, "posts", "Update", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.Post
			if err := tx.First(&existing, post.ID).Error; err != nil {
				return notFoundOr(err, "Post", post.ID)
			}
			existing.Title = post.Title
			existing.Content = post.Content
			if err := tx.Select("title", "content").Updates(&existing).Error; err != nil {
				return err
			}
			*post = existing
			return nil
		})
	})
}

func (r *postRepository) Delete(ctx context.Context, id uint) (uint, error) {
	var ownerID uint
	err := traced(ctx, "posts", "Delete", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var post models.Post
			if err := tx.First(&post, id).Error; err != nil {
				return notFoundOr(err, "Post", id)
			}
			if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&post).Error; err != nil {
				return err
			}
			ownerID = post.UserID
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}
