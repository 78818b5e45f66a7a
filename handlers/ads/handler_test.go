package ads

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"cee-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func adsRouter(userID, role string) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/advertisements", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		CreateAdvertisement(c)
	})
	r.PUT("/advertisements/:id/status", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		UpdateAdvertisementStatus(c)
	})
	return r
}

func adForm(businessID string) *bytes.Buffer {
	form := url.Values{}
	form.Set("businessId", businessID)
	form.Set("title", "Envíos a Colombia con descuento")
	form.Set("content", "Primer envío con 20% de descuento.")
	return bytes.NewBufferString(form.Encode())
}

func TestCreateAdvertisement_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "abc12345-e89b-12d3-a456-426614174000"
	businessID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "businesses" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(businessID, userID, "Arepas La Paisa"))

	mock.ExpectBegin()
	// Decremento atómico del crédito
	mock.ExpectExec(`UPDATE "users" SET "credits"=credits - 1 WHERE id = \$1 AND credits > 0`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credits"}).AddRow(userID, 299))
	mock.ExpectQuery(`INSERT INTO "credit_transactions" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tx-1"))
	mock.ExpectQuery(`INSERT INTO "advertisements" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ad-1"))
	mock.ExpectCommit()

	r := adsRouter(userID, "ANUNCIANTE")

	req, _ := http.NewRequest(http.MethodPost, "/advertisements", adForm(businessID))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Advertisement created successfully", respBody["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdvertisement_InsufficientCredits(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "abc12345-e89b-12d3-a456-426614174000"
	businessID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "businesses" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(businessID, userID, "Arepas La Paisa"))

	mock.ExpectBegin()
	// Saldo a cero: el UPDATE condicionado no toca ninguna fila
	mock.ExpectExec(`UPDATE "users" SET "credits"=credits - 1 WHERE id = \$1 AND credits > 0`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credits"}).AddRow(userID, 0))
	mock.ExpectRollback()

	r := adsRouter(userID, "ANUNCIANTE")

	req, _ := http.NewRequest(http.MethodPost, "/advertisements", adForm(businessID))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusPaymentRequired, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Insufficient credits")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdvertisement_NotBusinessOwner(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	userID := "abc12345-e89b-12d3-a456-426614174000"
	businessID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "businesses" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(businessID, "otro-usuario", "Arepas La Paisa"))

	r := adsRouter(userID, "ANUNCIANTE")

	req, _ := http.NewRequest(http.MethodPost, "/advertisements", adForm(businessID))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAdvertisementStatus_Approve(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	adID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "advertisements" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow(adID, "abc12345-e89b-12d3-a456-426614174000", "PENDING"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "advertisements" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := adsRouter("admin-id", "ADMIN")

	body := strings.NewReader(`{"status": "APPROVED"}`)
	req, _ := http.NewRequest(http.MethodPut, "/advertisements/"+adID+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAdvertisementStatus_UnknownStatus(t *testing.T) {
	adID := "123e4567-e89b-12d3-a456-426614174000"

	r := adsRouter("admin-id", "ADMIN")

	body := strings.NewReader(`{"status": "FEATURED"}`)
	req, _ := http.NewRequest(http.MethodPut, "/advertisements/"+adID+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
