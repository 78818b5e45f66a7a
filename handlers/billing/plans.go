package billing

import (
	"fmt"
	"os"

	"cee-backend/models"
)

// planCredits es la tabla fija plan → créditos mensuales
var planCredits = map[models.SubscriptionPlan]int{
	models.PlanBasic:    100,
	models.PlanPremium:  300,
	models.PlanFeatured: 1000,
}

// planPriceEnv es la variable de entorno con el price id de Stripe de cada plan
var planPriceEnv = map[models.SubscriptionPlan]string{
	models.PlanBasic:    "STRIPE_PRICE_BASIC",
	models.PlanPremium:  "STRIPE_PRICE_PREMIUM",
	models.PlanFeatured: "STRIPE_PRICE_FEATURED",
}

// CreditsForPlan devuelve la asignación mensual de créditos de un plan
func CreditsForPlan(plan models.SubscriptionPlan) (int, bool) {
	credits, ok := planCredits[plan]
	return credits, ok
}

func priceIDForPlan(plan models.SubscriptionPlan) (string, error) {
	envName, ok := planPriceEnv[plan]
	if !ok {
		return "", fmt.Errorf("%w: plan %q", ErrNotFound, plan)
	}
	priceID := os.Getenv(envName)
	if priceID == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrConfiguration, envName)
	}
	return priceID, nil
}
