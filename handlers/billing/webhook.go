package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"cee-backend/db"
	"cee-backend/models"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

// WebhookHandler recibe los eventos firmados de Stripe y los traduce a
// transiciones del estado local de suscripción. Solo un fallo de firma
// produce un 400; cualquier error posterior se registra y se responde
// igualmente {"received": true}, porque el reintento de Stripe ante un
// no-2xx duplicaría efectos de un handler que ya mutó parte del estado.
// @Summary Stripe billing webhook
// @Description Receives signed Stripe events and reconciles the local subscription status and credit balance.
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "received: true"
// @Failure 400 {object} map[string]string "error: Signature verification failed"
// @Router /webhooks/billing [post]
func WebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		utils.LogError(nil, "STRIPE_WEBHOOK_SECRET no configurado")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		utils.LogError(err, "Verificación de firma Stripe fallida")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		err = handleSubscriptionChange(event)
	case "customer.subscription.deleted":
		err = handleSubscriptionDeleted(event)
	case "invoice.payment_succeeded":
		err = handleInvoicePaymentSucceeded(event)
	case "invoice.payment_failed":
		err = handleInvoicePaymentFailed(event)
	default:
		utils.LogInfo("Evento Stripe ignorado: " + string(event.Type))
	}

	if err != nil {
		utils.LogError(err, "Error al procesar el evento "+string(event.Type))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func handleSubscriptionChange(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("parsing subscription payload: %w", err)
	}
	return applySubscriptionState(&sub, event.Created)
}

// applySubscriptionState traduce el estado de la suscripción Stripe al estado
// local y ajusta los créditos. Sin userId en metadata es un aviso de
// integridad, no un error: la firma ya se verificó.
func applySubscriptionState(sub *stripe.Subscription, eventCreated int64) error {
	userID := sub.Metadata["userId"]
	if userID == "" {
		utils.LogWarn("Evento de suscripción sin userId en metadata, se ignora: " + sub.ID)
		return nil
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogWarn("Usuario del evento no encontrado, se ignora: " + userID)
			return nil
		}
		return err
	}

	eventTime := time.Unix(eventCreated, 0)
	if isStaleEvent(&user, eventTime) {
		utils.LogWarn("Evento Stripe fuera de orden descartado para el usuario " + user.ID)
		return nil
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"last_billing_event_at": eventTime,
		}

		switch sub.Status {
		case stripe.SubscriptionStatusActive:
			updates["subscription_status"] = models.SubscriptionActive
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
				return err
			}
			return grantCredits(tx, &user, user.MonthlyCredits, "subscription active: "+sub.ID)

		case stripe.SubscriptionStatusPastDue:
			updates["subscription_status"] = models.SubscriptionPastDue
			return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error

		case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid:
			updates["subscription_status"] = models.SubscriptionCanceled
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
				return err
			}
			return resetCredits(tx, &user, "subscription "+string(sub.Status)+": "+sub.ID)

		default:
			updates["subscription_status"] = models.SubscriptionInactive
			return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
		}
	})
}

func handleSubscriptionDeleted(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("parsing subscription payload: %w", err)
	}

	userID := sub.Metadata["userId"]
	if userID == "" {
		utils.LogWarn("Evento de baja sin userId en metadata, se ignora: " + sub.ID)
		return nil
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogWarn("Usuario del evento de baja no encontrado, se ignora: " + userID)
			return nil
		}
		return err
	}

	eventTime := time.Unix(event.Created, 0)
	if isStaleEvent(&user, eventTime) {
		utils.LogWarn("Evento de baja fuera de orden descartado para el usuario " + user.ID)
		return nil
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"subscription_status":   models.SubscriptionCanceled,
			"monthly_credits":       0,
			"last_billing_event_at": eventTime,
		}).Error
		if err != nil {
			return err
		}
		return resetCredits(tx, &user, "subscription deleted: "+sub.ID)
	})
}

// handleInvoicePaymentSucceeded recupera la suscripción referida por la
// factura y la reprocesa con la misma lógica de transición.
func handleInvoicePaymentSucceeded(event stripe.Event) error {
	stripeSubID, err := subscriptionIDFromInvoice(event.Data.Raw)
	if err != nil {
		return err
	}
	if stripeSubID == "" {
		utils.LogWarn("Factura pagada sin suscripción asociada, se ignora")
		return nil
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	sub, err := stripeSubscription.Get(stripeSubID, nil)
	if err != nil {
		return fmt.Errorf("%w: retrieving subscription %s: %v", ErrProvider, stripeSubID, err)
	}

	return applySubscriptionState(sub, event.Created)
}

func handleInvoicePaymentFailed(event stripe.Event) error {
	stripeSubID, err := subscriptionIDFromInvoice(event.Data.Raw)
	if err != nil {
		return err
	}
	if stripeSubID == "" {
		utils.LogWarn("Factura impagada sin suscripción asociada, se ignora")
		return nil
	}

	var user models.User
	if err := db.DB.First(&user, "stripe_subscription_id = ?", stripeSubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogWarn("Usuario de la factura impagada no encontrado, se ignora: " + stripeSubID)
			return nil
		}
		return err
	}

	eventTime := time.Unix(event.Created, 0)
	if isStaleEvent(&user, eventTime) {
		utils.LogWarn("Factura impagada fuera de orden descartada para el usuario " + user.ID)
		return nil
	}

	// Impago: el estado pasa a PAST_DUE pero el saldo no se toca
	return db.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"subscription_status":   models.SubscriptionPastDue,
		"last_billing_event_at": eventTime,
	}).Error
}

// subscriptionIDFromInvoice extrae el id de suscripción del payload de una
// factura. Desde la API basil el campo vive en parent.subscription_details;
// se mantiene el campo plano como alternativa para payloads antiguos.
func subscriptionIDFromInvoice(raw json.RawMessage) (string, error) {
	var invoiceData map[string]interface{}
	if err := json.Unmarshal(raw, &invoiceData); err != nil {
		return "", fmt.Errorf("parsing invoice payload: %w", err)
	}

	if parent, ok := invoiceData["parent"].(map[string]interface{}); ok {
		if subDetails, ok := parent["subscription_details"].(map[string]interface{}); ok {
			if sub, ok := subDetails["subscription"].(string); ok && sub != "" {
				return sub, nil
			}
		}
	}

	if v, ok := invoiceData["subscription"]; ok && v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
	}

	return "", nil
}

// isStaleEvent indica si el evento es anterior al último aplicado para el
// usuario. Stripe no garantiza el orden de entrega; sin esta comprobación
// una entrega tardía podría retroceder el estado en el tiempo.
func isStaleEvent(user *models.User, eventTime time.Time) bool {
	return user.LastBillingEventAt != nil && eventTime.Before(*user.LastBillingEventAt)
}
