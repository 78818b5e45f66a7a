package models

import (
	"time"
)

// CreditTransactionType define los tipos de movimientos de créditos
type CreditTransactionType string

const (
	CreditGrant CreditTransactionType = "GRANT"
	CreditSpend CreditTransactionType = "SPEND"
	CreditReset CreditTransactionType = "RESET"
)

// CreditTransaction es una entrada del libro de créditos. Cada mutación del
// saldo de un usuario deja una fila aquí, nunca se actualiza ni se borra.
type CreditTransaction struct {
	ID        string                `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string                `json:"userId" gorm:"type:uuid;not null;index"`
	Type      CreditTransactionType `json:"type" gorm:"type:varchar(10);not null"`
	Amount    int                   `json:"amount"`
	Balance   int                   `json:"balance"`
	Reason    string                `json:"reason"`
	CreatedAt time.Time             `json:"createdAt"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
