package repository

import (
	"context"

	"blogly/internal/config"
	"blogly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByIDWithPosts loads the user and its posts, newest first.
	GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db           *gorm.DB
	deletePolicy string
}

// NewUserRepository returns a UserRepository. deletePolicy is
// config.UserDeleteCascade or config.UserDeleteRestrict.
func NewUserRepository(db *gorm.DB, deletePolicy string) UserRepository {
	if deletePolicy == "" {
		deletePolicy = config.UserDeleteCascade
	}
	return &userRepository{db: db, deletePolicy: deletePolicy}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := traced(ctx, "users", "GetByID", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			return notFoundOr(err, "User", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := traced(ctx, "users", "GetByIDWithPosts", func(ctx context.Context) error {
		err := r.db.WithContext(ctx).
			Preload("Posts", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC").Order("id DESC")
			}).
			First(&user, id).Error
		if err != nil {
			return notFoundOr(err, "User", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := traced(ctx, "users", "List", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return traced(ctx, "users", "Create", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Omit("Posts").Create(user).Error
		})
	})
}

// Update overwrites the editable fields of the user with user.ID.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return traced(ctx, "users", "Update", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.User
			if err := tx.First(&existing, user.ID).Error; err != nil {
				return notFoundOr(err, "User", user.ID)
			}
			existing.UserName = user.UserName
			existing.FirstName = user.FirstName
			existing.LastName = user.LastName
			existing.Email = user.Email
			existing.ImageURL = user.ImageURL
			err := tx.Select("user_name", "first_name", "last_name", "email", "image_url").
				Updates(&existing).Error
			if err != nil {
				return err
			}
			*user = existing
			return nil
		})
	})
}

// Delete removes the user. Under the cascade policy its posts and their tag
// links go with it; under restrict a user that still owns posts is a conflict.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return traced(ctx, "users", "Delete", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// The row lock blocks concurrent post inserts for this user
			// until the policy check and the delete are done.
			var user models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
				return notFoundOr(err, "User", id)
			}

			var postIDs []uint
			if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
				return err
			}

			if len(postIDs) > 0 {
				if r.deletePolicy == config.UserDeleteRestrict {
					return models.NewConflictError("User still owns posts; delete them first", nil)
				}
				if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostTag{}).Error; err != nil {
					return err
				}
				if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
					return err
				}
			}

			return tx.Delete(&user).Error
		})
	})
}
