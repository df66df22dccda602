package models

// Tag is a label that can be attached to many posts.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Posts []Post `gorm:"many2many:posts_tags;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// TableName pins the table name used by the SQL migrations.
func (Tag) TableName() string {
	return "tags"
}

// HasPost reports whether postID is among the loaded Posts.
func (t Tag) HasPost(postID uint) bool {
	for _, p := range t.Posts {
		if p.ID == postID {
			return true
		}
	}
	return false
}
