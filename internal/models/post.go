package models

import (
	"time"
)

// Post is a titled piece of content owned by exactly one User.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:300;not null" json:"title"`
	Content   string    `gorm:"type:text;not null;default:''" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Tags      []Tag     `gorm:"many2many:posts_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name used by the SQL migrations.
func (Post) TableName() string {
	return "posts"
}

// HasTag reports whether tagID is among the loaded Tags.
func (p Post) HasTag(tagID uint) bool {
	for _, t := range p.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// PostTag links one Post to one Tag. The pair is the primary key.
type PostTag struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

// TableName pins the join table name.
func (PostTag) TableName() string {
	return "posts_tags"
}
