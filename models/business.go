package models

import (
	"time"
)

// Business representa el negocio de un anunciante
type Business struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      string     `json:"userId" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" gorm:"type:text"`
	Category    string     `json:"category"`
	City        string     `json:"city"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	Website     string     `json:"website"`
	LogoURL     string     `json:"logoUrl" gorm:"column:logo_url"`
	Enable      bool       `json:"enable" gorm:"default:true"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

func (Business) TableName() string {
	return "businesses"
}

// BusinessCreate modelo para registrar un negocio
type BusinessCreate struct {
	Name        string `json:"name" binding:"required" example:"Arepas La Paisa"`
	Description string `json:"description" example:"Restaurante colombiano en el centro de Madrid"`
	Category    string `json:"category" example:"restaurantes"`
	City        string `json:"city" example:"Madrid"`
	Address     string `json:"address" example:"Calle Mayor 12"`
	Phone       string `json:"phone" example:"+34 600 000 000"`
	Website     string `json:"website" example:"https://arepaslapaisa.es"`
}

// BusinessUpdate modelo para actualizar un negocio
type BusinessUpdate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
}
