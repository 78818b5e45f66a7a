package billing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cee-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	stripe "github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

// stubStripeBackend apunta el cliente Stripe a un servidor local que imita
// las respuestas mínimas de la API y cuenta las creaciones de customer
func stubStripeBackend(t *testing.T, customerCreates *int) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/customers/"):
			fmt.Fprintf(w, `{"id": %q, "object": "customer"}`, strings.TrimPrefix(r.URL.Path, "/v1/customers/"))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/customers":
			*customerCreates++
			fmt.Fprint(w, `{"id": "cus_new", "object": "customer"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/subscriptions":
			fmt.Fprint(w, `{"id": "sub_new", "object": "subscription", "status": "incomplete", "latest_invoice": {"id": "in_1", "object": "invoice", "confirmation_secret": {"client_secret": "pi_123_secret_456"}}}`)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/v1/subscriptions/"):
			fmt.Fprintf(w, `{"id": %q, "object": "subscription", "status": "canceled"}`, strings.TrimPrefix(r.URL.Path, "/v1/subscriptions/"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(server.URL),
	})
	stripe.SetBackend(stripe.APIBackend, backend)

	t.Cleanup(func() {
		stripe.SetBackend(stripe.APIBackend, nil)
		server.Close()
	})
}

func subscriptionRouter(userID, role string) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/subscriptions", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		CreateSubscription(c)
	})
	return r
}

func TestCreateSubscription_InvalidBody(t *testing.T) {
	r := subscriptionRouter("user-1", "ANUNCIANTE")

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBufferString(`{"planId": "premium"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateSubscription_UnknownPlan(t *testing.T) {
	userID := "123e4567-e89b-12d3-a456-426614174000"
	r := subscriptionRouter(userID, "ANUNCIANTE")

	body, _ := json.Marshal(map[string]string{
		"planId": "enterprise",
		"userId": userID,
		"email":  "ana@ejemplo.com",
	})
	req, _ := http.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Unknown plan")
}

func TestCreateSubscription_UserNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := subscriptionRouter(userID, "ANUNCIANTE")

	body, _ := json.Marshal(map[string]string{
		"planId": "premium",
		"userId": userID,
		"email":  "ana@ejemplo.com",
	})
	req, _ := http.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubscription_Success_WritesPendingState(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_PRICE_PREMIUM", "price_premium_123")

	customerCreates := 0
	stubStripeBackend(t, &customerCreates)

	userID := "123e4567-e89b-12d3-a456-426614174000"

	// Usuario con customer Stripe ya persistido y saldo previo
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits", "stripe_customer_id"}).
			AddRow(userID, "Ana", 7, "cus_existing"))

	// El estado pending se guarda sin tocar la columna credits
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "monthly_credits"=\$1,"stripe_subscription_id"=\$2,"subscription_plan"=\$3,"subscription_status"=\$4,"updated_at"=\$5`).
		WithArgs(300, "sub_new", "premium", "PENDING", sqlmock.AnyArg(), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := subscriptionRouter(userID, "ANUNCIANTE")

	body, _ := json.Marshal(map[string]string{
		"planId": "premium",
		"userId": userID,
		"email":  "ana@ejemplo.com",
	})
	req, _ := http.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, true, respBody["success"])
	assert.Equal(t, "pi_123_secret_456", respBody["clientSecret"])
	assert.Equal(t, "sub_new", respBody["subscriptionId"])
	assert.Equal(t, "cus_existing", respBody["customerId"])

	// El customer persistido se reutiliza, nunca se crea otro
	assert.Equal(t, 0, customerCreates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubscription_FirstTime_CreatesCustomerOnce(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_PRICE_BASIC", "price_basic_123")

	customerCreates := 0
	stubStripeBackend(t, &customerCreates)

	userID := "123e4567-e89b-12d3-a456-426614174000"

	// Usuario sin customer Stripe todavía
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stripe_customer_id"}).
			AddRow(userID, "Ana", ""))

	// El id del customer recién creado se persiste
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "stripe_customer_id"=\$1,"updated_at"=\$2`).
		WithArgs("cus_new", sqlmock.AnyArg(), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "monthly_credits"=\$1,"stripe_subscription_id"=\$2,"subscription_plan"=\$3,"subscription_status"=\$4,"updated_at"=\$5`).
		WithArgs(100, "sub_new", "basic", "PENDING", sqlmock.AnyArg(), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := subscriptionRouter(userID, "ANUNCIANTE")

	body, _ := json.Marshal(map[string]string{
		"planId": "basic",
		"userId": userID,
		"email":  "ana@ejemplo.com",
	})
	req, _ := http.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "cus_new", respBody["customerId"])

	assert.Equal(t, 1, customerCreates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelSubscription_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	customerCreates := 0
	stubStripeBackend(t, &customerCreates)

	userID := "123e4567-e89b-12d3-a456-426614174000"

	// Solo lectura: el estado local lo fija después el webhook de baja
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stripe_subscription_id", "subscription_status"}).
			AddRow(userID, "sub_live", "ACTIVE"))

	r := testutils.SetupTestRouter()
	r.DELETE("/subscriptions", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", "ANUNCIANTE")
		CancelSubscription(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/subscriptions", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Subscription cancellation requested", respBody["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelSubscription_NoSubscription(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stripe_subscription_id"}).
			AddRow(userID, ""))

	r := testutils.SetupTestRouter()
	r.DELETE("/subscriptions", func(c *gin.Context) {
		c.Set("user_id", userID)
		CancelSubscription(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/subscriptions", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubscription_ForbiddenForOtherUser(t *testing.T) {
	r := subscriptionRouter("user-1", "ANUNCIANTE")

	body, _ := json.Marshal(map[string]string{
		"planId": "premium",
		"userId": "user-2",
		"email":  "otro@ejemplo.com",
	})
	req, _ := http.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
