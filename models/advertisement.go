package models

import (
	"time"
)

// AdvertisementStatus define los estados posibles de un anuncio
type AdvertisementStatus string

const (
	AdvertisementPending  AdvertisementStatus = "PENDING"
	AdvertisementApproved AdvertisementStatus = "APPROVED"
	AdvertisementPaused   AdvertisementStatus = "PAUSED"
	AdvertisementRejected AdvertisementStatus = "REJECTED"
)

// Advertisement representa un anuncio publicado por un anunciante.
// Crear uno consume un crédito del saldo del usuario; solo pasa a APPROVED
// mediante la moderación de un admin.
type Advertisement struct {
	ID         string              `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID     string              `json:"userId" gorm:"type:uuid;not null;index"`
	BusinessID string              `json:"businessId" gorm:"type:uuid;not null;index"`
	Title      string              `json:"title" binding:"required"`
	Content    string              `json:"content" gorm:"type:text"`
	ImageURL   string              `json:"imageUrl" gorm:"column:image_url"`
	TargetURL  string              `json:"targetUrl" gorm:"column:target_url"`
	Status     AdvertisementStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	DeletedAt  *time.Time          `json:"deletedAt,omitempty" gorm:"index"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}

// AdvertisementCreate modelo para crear un anuncio
type AdvertisementCreate struct {
	BusinessID string `json:"businessId" form:"businessId" binding:"required"`
	Title      string `json:"title" form:"title" binding:"required" example:"Envíos a Colombia con descuento"`
	Content    string `json:"content" form:"content" example:"Primer envío con 20% de descuento para nuevos clientes."`
	TargetURL  string `json:"targetUrl" form:"targetUrl" example:"https://arepaslapaisa.es/promo"`
}

// AdvertisementStatusUpdate modelo para moderar un anuncio (solo admin)
type AdvertisementStatusUpdate struct {
	Status AdvertisementStatus `json:"status" binding:"required" example:"APPROVED"`
}
