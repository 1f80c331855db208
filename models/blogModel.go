package models

import "time"

type BlogPost struct {
	Base
	Title         string         `json:"title" gorm:"not null"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;size:191;not null"`
	Content       string         `json:"content" gorm:"type:text;not null"`
	Excerpt       string         `json:"excerpt"`
	CoverImageUrl string         `json:"coverImageUrl"`
	AuthorID      uint           `json:"authorId" gorm:"not null"`
	Published     bool           `json:"published" gorm:"not null;default:false"`
	PublishedAt   *time.Time     `json:"publishedAt"`
	Categories    []BlogCategory `json:"categories,omitempty" gorm:"-"`
}

type BlogCategory struct {
	Base
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:191;not null"`
}

type BlogPostCategory struct {
	Base
	PostID     uint `json:"postId" gorm:"uniqueIndex:idx_post_category;not null"`
	CategoryID uint `json:"categoryId" gorm:"uniqueIndex:idx_post_category;not null"`
}
