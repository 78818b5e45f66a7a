package billing

import (
	"errors"
	"testing"

	"cee-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCreditsForPlan(t *testing.T) {
	cases := []struct {
		plan    models.SubscriptionPlan
		credits int
	}{
		{models.PlanBasic, 100},
		{models.PlanPremium, 300},
		{models.PlanFeatured, 1000},
	}

	for _, c := range cases {
		credits, ok := CreditsForPlan(c.plan)
		assert.True(t, ok, "plan %s debería existir", c.plan)
		assert.Equal(t, c.credits, credits)
	}
}

func TestCreditsForPlan_Unknown(t *testing.T) {
	_, ok := CreditsForPlan(models.SubscriptionPlan("enterprise"))
	assert.False(t, ok)
}

func TestPriceIDForPlan(t *testing.T) {
	t.Setenv("STRIPE_PRICE_PREMIUM", "price_premium_1")

	priceID, err := priceIDForPlan(models.PlanPremium)
	assert.NoError(t, err)
	assert.Equal(t, "price_premium_1", priceID)
}

func TestPriceIDForPlan_MissingConfig(t *testing.T) {
	t.Setenv("STRIPE_PRICE_BASIC", "")

	_, err := priceIDForPlan(models.PlanBasic)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestPriceIDForPlan_UnknownPlan(t *testing.T) {
	_, err := priceIDForPlan(models.SubscriptionPlan("enterprise"))
	assert.True(t, errors.Is(err, ErrNotFound))
}
