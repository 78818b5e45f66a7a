package billing

import (
	"errors"
	"time"

	"cee-backend/models"

	"gorm.io/gorm"
)

// Las mutaciones de créditos pasan todas por aquí: el saldo se guarda en
// users.credits pero cada cambio deja una fila en credit_transactions, y el
// gasto usa un decremento atómico en SQL para no perder escrituras cuando un
// webhook de reposición llega a la vez que la creación de un anuncio.

func appendLedgerEntry(tx *gorm.DB, userID string, txType models.CreditTransactionType, amount, balance int, reason string) error {
	entry := models.CreditTransaction{
		UserID:  userID,
		Type:    txType,
		Amount:  amount,
		Balance: balance,
		Reason:  reason,
	}
	return tx.Create(&entry).Error
}

// grantCredits fija el saldo a la asignación del plan dentro de la transacción
func grantCredits(tx *gorm.DB, user *models.User, amount int, reason string) error {
	now := time.Now()
	err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"credits":            amount,
		"credits_reset_date": now,
	}).Error
	if err != nil {
		return err
	}
	return appendLedgerEntry(tx, user.ID, models.CreditGrant, amount, amount, reason)
}

// resetCredits pone el saldo a cero dentro de la transacción. El saldo se
// relee aquí y no del struct del llamante: esa lectura pudo quedar por detrás
// de un gasto concurrente ya confirmado y el asiento saldría descuadrado.
func resetCredits(tx *gorm.DB, user *models.User, reason string) error {
	var current models.User
	if err := tx.Select("credits").First(&current, "id = ?", user.ID).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("credits", 0).Error; err != nil {
		return err
	}
	return appendLedgerEntry(tx, user.ID, models.CreditReset, -current.Credits, 0, reason)
}

// SpendCredit descuenta un crédito del usuario de forma atómica. El UPDATE
// condicionado evita el read-modify-write: si el saldo ya es cero ninguna
// fila cambia y se devuelve ErrInsufficientCredits. El llamante aporta la
// transacción que engloba el gasto y lo que compre con él.
func SpendCredit(tx *gorm.DB, userID string, reason string) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND credits > 0", userID).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return ErrInsufficientCredits
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	return appendLedgerEntry(tx, userID, models.CreditSpend, -1, user.Credits, reason)
}
