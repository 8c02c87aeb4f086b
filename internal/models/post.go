package models

import "time"

// PostStatus defines the publication state of a post.
type PostStatus string

const (
	// PostStatusDraft indicates a post is not yet visible to readers.
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished indicates a post is live.
	PostStatusPublished PostStatus = "published"
	// PostStatusArchived indicates a post was retired from the published set.
	PostStatusArchived PostStatus = "archived"
)

// Valid reports whether s is one of the known publication states.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Post represents a blog article owned by a user.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"size:300" json:"excerpt"`
	Slug        string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Status      PostStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	User        User       `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
