package blog

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"cee-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		slug  string
	}{
		{"Cómo homologar tu título en España", "como-homologar-tu-titulo-en-espana"},
		{"Visados de trabajo 2026", "visados-de-trabajo-2026"},
		{"  Trámites NIE  ", "tramites-nie"},
	}

	for _, c := range cases {
		assert.Equal(t, c.slug, slugify(c.title))
	}
}

func TestCreateBlogPost_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	authorID := "123e4567-e89b-12d3-a456-426614174000"

	mock.ExpectQuery(`SELECT (.+) FROM "blog_posts" WHERE slug = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "blog_posts" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("post-1"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/blog", func(c *gin.Context) {
		c.Set("user_id", authorID)
		c.Set("role", "ADMIN")
		CreateBlogPost(c)
	})

	form := url.Values{}
	form.Set("title", "Cómo homologar tu título en España")
	form.Set("content", "Guía paso a paso del proceso de homologación.")
	form.Set("published", "true")

	req, _ := http.NewRequest(http.MethodPost, "/blog", bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "como-homologar-tu-titulo-en-espana", respBody["slug"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlogPost_DuplicateSlug(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "blog_posts" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).
			AddRow("post-1", "visados-de-trabajo-2026"))

	r := testutils.SetupTestRouter()
	r.POST("/blog", func(c *gin.Context) {
		c.Set("user_id", "admin-id")
		c.Set("role", "ADMIN")
		CreateBlogPost(c)
	})

	form := url.Values{}
	form.Set("title", "Visados de trabajo 2026")
	form.Set("content", "Novedades del año.")

	req, _ := http.NewRequest(http.MethodPost, "/blog", bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "blog_posts" WHERE slug = \$1`).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.GET("/blog/:slug", GetPostBySlug)

	req, _ := http.NewRequest(http.MethodGet, "/blog/no-existe", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
