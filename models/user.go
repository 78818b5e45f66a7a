package models

import (
	"time"
)

// Role define los roles posibles de un usuario
type Role string

const (
	GuestRole      Role = "GUEST"
	AdminRole      Role = "ADMIN"
	AnuncianteRole Role = "ANUNCIANTE"
)

// SubscriptionPlan es el plan de suscripción de un anunciante
type SubscriptionPlan string

const (
	PlanBasic    SubscriptionPlan = "basic"
	PlanPremium  SubscriptionPlan = "premium"
	PlanFeatured SubscriptionPlan = "featured"
)

// SubscriptionStatus es el estado local de la suscripción Stripe
type SubscriptionStatus string

const (
	SubscriptionInactive SubscriptionStatus = "INACTIVE"
	SubscriptionPending  SubscriptionStatus = "PENDING"
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

// User representa un usuario en la base de datos
type User struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email                string             `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password             string             `json:"password,omitempty" binding:"required,min=6"`
	Name                 string             `json:"name"`
	Role                 Role               `json:"role" gorm:"type:varchar(20);default:'GUEST'"`
	ProfilePicture       string             `json:"profilePicture"`
	Phone                string             `json:"phone"`
	SubscriptionPlan     SubscriptionPlan   `json:"subscriptionPlan" gorm:"type:varchar(20)"`
	SubscriptionStatus   SubscriptionStatus `json:"subscriptionStatus" gorm:"type:varchar(20);default:'INACTIVE'"`
	Credits              int                `json:"credits" gorm:"default:0"`
	MonthlyCredits       int                `json:"monthlyCredits" gorm:"default:0"`
	StripeCustomerId     string             `json:"stripeCustomerId"`
	StripeSubscriptionId string             `json:"stripeSubscriptionId"`
	CreditsResetDate     *time.Time         `json:"creditsResetDate"`
	// Marca temporal Stripe del último evento webhook aplicado, para
	// descartar entregas fuera de orden.
	LastBillingEventAt *time.Time `json:"-"`
	Enable             bool       `json:"enable" gorm:"default:true"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	DeletedAt          *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// UserUpdate modelo para actualizar el perfil propio
type UserUpdate struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
}

// UserRoleUpdate modelo para cambiar el rol de un usuario (solo admin)
type UserRoleUpdate struct {
	Role Role `json:"role" binding:"required" example:"ANUNCIANTE"`
}
