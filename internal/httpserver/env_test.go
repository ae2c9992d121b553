package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lvieira/catalogo-api/internal/config"
	"github.com/lvieira/catalogo-api/internal/models"
	"github.com/lvieira/catalogo-api/internal/repo"
	"github.com/lvieira/catalogo-api/internal/service"
)

type testEnv struct {
	T          *testing.T
	E          *echo.Echo
	DB         *gorm.DB
	Auth       *AuthHTTP
	Products   *ProductHTTP
	Categories *CategoryHTTP
	JWTSecret  []byte
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	secret := []byte("test-secret")

	return &testEnv{
		T:          t,
		E:          echo.New(),
		DB:         db,
		Auth:       &AuthHTTP{Svc: &service.AuthService{Repo: gormRepo, JWTSecret: secret}},
		Products:   &ProductHTTP{Svc: catalogSvc},
		Categories: &CategoryHTTP{Svc: catalogSvc},
		JWTSecret:  secret,
	}
}

func (env *testEnv) doJSONRequest(method, path string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createCategory(name, description string) models.Category {
	cat := models.Category{Name: name, Description: description}
	require.NoError(env.T, env.DB.Create(&cat).Error)
	return cat
}

func (env *testEnv) countProductLinks(productID uint) int64 {
	var total int64
	require.NoError(env.T, env.DB.Model(&models.CategoryProduct{}).
		Where("product_id = ?", productID).Count(&total).Error)
	return total
}

func (env *testEnv) linkedCategoryIDs(productID uint) []uint {
	var links []models.CategoryProduct
	require.NoError(env.T, env.DB.Where("product_id = ?", productID).
		Order("id ASC").Find(&links).Error)
	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.CategoryID)
	}
	return ids
}
