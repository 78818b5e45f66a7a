package models

import (
	"time"
)

// Contact representa una solicitud de contacto (lead) en la base de datos
type Contact struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Phone       string     `json:"phone"`
	Subject     string     `json:"subject" binding:"required"`
	Message     string     `json:"message" gorm:"type:text" binding:"required"`
	Processed   bool       `json:"processed" gorm:"default:false"`
	SubmittedAt time.Time  `json:"submittedAt" gorm:"column:submitted_at;default:CURRENT_TIMESTAMP"`
	CreatedAt   time.Time  `json:"createdAt" swaggerignore:"true"`
	UpdatedAt   time.Time  `json:"updatedAt" swaggerignore:"true"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" swaggerignore:"true" gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ContactCreate modelo para crear una solicitud de contacto
type ContactCreate struct {
	Name    string `json:"name" binding:"required" example:"María González"`
	Email   string `json:"email" binding:"required,email" example:"maria.gonzalez@ejemplo.com"`
	Phone   string `json:"phone" example:"+34 600 123 456"`
	Subject string `json:"subject" binding:"required" example:"Visado de trabajo"`
	Message string `json:"message" binding:"required" example:"Quisiera información sobre el proceso de visado para trabajar en España."`
}
