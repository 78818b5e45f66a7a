package models

import (
	"time"
)

// BlogPost representa una entrada del blog gestionada por los admins
type BlogPost struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AuthorID      string     `json:"authorId" gorm:"type:uuid;not null"`
	Title         string     `json:"title" binding:"required"`
	Slug          string     `json:"slug" gorm:"uniqueIndex"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content" gorm:"type:text"`
	CoverImageURL string     `json:"coverImageUrl" gorm:"column:cover_image_url"`
	Published     bool       `json:"published" gorm:"default:false"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// BlogPostCreate modelo para crear una entrada del blog
type BlogPostCreate struct {
	Title     string `json:"title" form:"title" binding:"required" example:"Cómo homologar tu título en España"`
	Excerpt   string `json:"excerpt" form:"excerpt"`
	Content   string `json:"content" form:"content" binding:"required"`
	Published bool   `json:"published" form:"published"`
}

// BlogPostUpdate modelo para actualizar una entrada del blog
type BlogPostUpdate struct {
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}
