package billing

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"cee-backend/db"
	"cee-backend/models"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
	"gorm.io/gorm"
)

// SubscriptionRequest cuerpo de la petición de alta de suscripción
type SubscriptionRequest struct {
	PlanID string `json:"planId" binding:"required" example:"premium"`
	UserID string `json:"userId" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
}

// CreateSubscription crea la suscripción Stripe en estado incompleto y deja el
// perfil en PENDING. La activación (y la carga de créditos) llega solo por
// webhook, nunca desde este camino síncrono.
// @Summary Create a subscription
// @Description Create a Stripe subscription for the given plan. Returns the client secret to confirm the payment on the frontend. Credits only become spendable once the webhook confirms activation.
// @Tags billing
// @Accept json
// @Produce json
// @Param subscription body SubscriptionRequest true "Subscription request"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "success, clientSecret, subscriptionId, customerId"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Unknown user or plan"
// @Failure 500 {object} map[string]string "error: Configuration or provider error"
// @Router /subscriptions [post]
func CreateSubscription(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	authUserID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated en CreateSubscription")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if authUserID != req.UserID && c.GetString("role") != string(models.AdminRole) {
		utils.LogErrorWithUser(authUserID, nil, "Intento de suscribir a otro usuario en CreateSubscription")
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only subscribe your own account"})
		return
	}

	plan := models.SubscriptionPlan(req.PlanID)
	monthlyCredits, ok := CreditsForPlan(plan)
	if !ok {
		utils.LogErrorWithUser(authUserID, nil, "Plan desconocido en CreateSubscription: "+req.PlanID)
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown plan: " + req.PlanID})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		utils.LogErrorWithUser(authUserID, err, "User not found en CreateSubscription")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	customerID, err := ensureCustomer(&user, req.Email)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error al asegurar el customer Stripe en CreateSubscription")
		c.JSON(HTTPStatus(err), gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	sub, clientSecret, err := createStripeSubscription(customerID, plan, user.ID)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error al crear la suscripción Stripe en CreateSubscription")
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	// Estado provisional: PENDING con la asignación del plan anotada. El saldo
	// gastable (credits) no se toca hasta que el webhook confirme el pago.
	err = db.DB.Model(&user).Updates(map[string]interface{}{
		"subscription_status":    models.SubscriptionPending,
		"subscription_plan":      plan,
		"monthly_credits":        monthlyCredits,
		"stripe_subscription_id": sub.ID,
	}).Error
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error al guardar el estado pending en CreateSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving the subscription state"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "Suscripción creada en estado pending en CreateSubscription")
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"clientSecret":   clientSecret,
		"subscriptionId": sub.ID,
		"customerId":     customerID,
	})
}

// ensureCustomer devuelve el customer Stripe del usuario, creándolo una sola
// vez. Si el id guardado ya no existe en Stripe se recrea y se persiste el
// nuevo; llamadas repetidas nunca duplican customers.
func ensureCustomer(user *models.User, email string) (string, error) {
	if user.StripeCustomerId != "" {
		_, err := customer.Get(user.StripeCustomerId, nil)
		if err == nil {
			return user.StripeCustomerId, nil
		}
		user.StripeCustomerId = ""
	}

	custParams := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(user.Name),
	}
	cust, err := customer.New(custParams)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if err := db.DB.Model(user).Update("stripe_customer_id", cust.ID).Error; err != nil {
		return "", err
	}
	user.StripeCustomerId = cust.ID
	return cust.ID, nil
}

func createStripeSubscription(customerID string, plan models.SubscriptionPlan, userID string) (*stripe.Subscription, string, error) {
	priceID, err := priceIDForPlan(plan)
	if err != nil {
		return nil, "", err
	}

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.AddMetadata("userId", userID)
	params.AddMetadata("planId", string(plan))
	params.AddExpand("latest_invoice.confirmation_secret")

	sub, err := stripeSubscription.New(params)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if sub.LatestInvoice == nil || sub.LatestInvoice.ConfirmationSecret == nil {
		return nil, "", fmt.Errorf("%w: subscription %s has no confirmation secret", ErrProvider, sub.ID)
	}

	return sub, sub.LatestInvoice.ConfirmationSecret.ClientSecret, nil
}

// CancelSubscription cancela la suscripción del usuario conectado en Stripe.
// El estado local no se toca aquí: lo fija el webhook
// customer.subscription.deleted, que es la fuente autoritativa.
// @Summary Cancel the current subscription
// @Description Cancel the connected user's Stripe subscription. The local status is updated when Stripe confirms via webhook.
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription cancellation requested"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: No active subscription"
// @Failure 500 {object} map[string]string "error: Stripe error"
// @Router /subscriptions [delete]
func CancelSubscription(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching the user"})
		return
	}

	if user.StripeSubscriptionId == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription to cancel"})
		return
	}

	_, err := stripeSubscription.Cancel(user.StripeSubscriptionId, &stripe.SubscriptionCancelParams{
		Prorate: stripe.Bool(false),
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error al cancelar en Stripe en CancelSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when canceling the Stripe subscription"})
		return
	}

	utils.LogSuccessWithUser(userID, "Cancelación solicitada en CancelSubscription")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancellation requested"})
}
