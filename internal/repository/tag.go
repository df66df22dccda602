package repository

import (
	"context"

	"blogly/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines persistence operations for tags and their post links.
type TagRepository interface {
	// GetByID loads the tag with its posts, newest first.
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	// Create inserts the tag linked to the existing posts among postIDs.
	Create(ctx context.Context, tag *models.Tag, postIDs []uint) error
	// Update renames the tag and replaces its post set with the existing
	// posts among postIDs.
	Update(ctx context.Context, tag *models.Tag, postIDs []uint) error
	// Delete removes the tag and its post links. Posts are untouched.
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := traced(ctx, "tags", "GetByID", func(ctx context.Context) error {
		err := r.db.WithContext(ctx).
			Preload("Posts", newestFirst).
			First(&tag, id).Error
		if err != nil {
			return notFoundOr(err, "Tag", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := traced(ctx, "tags", "List", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&tags).Error
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag, postIDs []uint) error {
	return traced(ctx, "tags", "Create", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Posts").Create(tag).Error; err != nil {
				return err
			}
			return linkPosts(tx, tag.ID, postIDs)
		})
	})
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag, postIDs []uint) error {
	return traced(ctx, "tags", "Update", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.Tag
			if err := tx.First(&existing, tag.ID).Error; err != nil {
				return notFoundOr(err, "Tag", tag.ID)
			}
			existing.Name = tag.Name
			if err := tx.Select("name").Updates(&existing).Error; err != nil {
				return err
			}
			if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.PostTag{}).Error; err != nil {
				return err
			}
			if err := linkPosts(tx, tag.ID, postIDs); err != nil {
				return err
			}
			*tag = existing
			return nil
		})
	})
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return traced(ctx, "tags", "Delete", func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var tag models.Tag
			if err := tx.First(&tag, id).Error; err != nil {
				return notFoundOr(err, "Tag", id)
			}
			if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
				return err
			}
			return tx.Delete(&tag).Error
		})
	})
}

// linkPosts inserts one PostTag row per distinct existing post in postIDs.
// Unknown ids are dropped.
func linkPosts(tx *gorm.DB, tagID uint, postIDs []uint) error {
	ids := uniqueIDs(postIDs)
	if len(ids) == 0 {
		return nil
	}

	var existing []uint
	if err := tx.Model(&models.Post{}).Where("id IN ?", ids).Order("id ASC").Pluck("id", &existing).Error; err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	links := make([]models.PostTag, 0, len(existing))
	for _, postID := range existing {
		links = append(links, models.PostTag{PostID: postID, TagID: tagID})
	}
	return tx.Create(&links).Error
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
