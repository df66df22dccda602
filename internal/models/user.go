// Package models contains the Blogly domain entities and application errors.
package models

import (
	"time"
)

// DefaultImageURL is shown for users who have not set an image.
const DefaultImageURL = "https://www.freeiconspng.com/uploads/icon-user-blue-symbol-people-person-generic--public-domain--21.png"

// User is an author of posts.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserName  string    `gorm:"size:100;not null" json:"user_name"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:255;not null;default:''" json:"user_email"`
	ImageURL  string    `gorm:"type:text;not null;default:''" json:"image_url"`
	Posts     []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name used by the SQL migrations.
func (User) TableName() string {
	return "users"
}

// FullName returns "First Last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AvatarURL returns ImageURL, or DefaultImageURL when it is empty.
func (u User) AvatarURL() string {
	if u.ImageURL == "" {
		return DefaultImageURL
	}
	return u.ImageURL
}
