package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"storefront-service/internal/model"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/pkg/jwtutil"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	jwtutil.Initialize(&cfg.JWT)
	prometheus.InitMetrics(cfg)
	Init(cfg, nil, nil)
	os.Exit(m.Run())
}

// setupTestDB swaps the package-level database for a fresh in-memory one
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	previous := database.GetDB()
	database.SetDB(db)
	t.Cleanup(func() { database.SetDB(previous) })
	return db
}

// newRequestContext builds an echo context around a JSON request
func newRequestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, userID uint, staff bool) {
	c.Set("user_id", userID)
	c.Set("email", "user@example.com")
	c.Set("is_staff", staff)
}

func createTestCollection(t *testing.T, db *gorm.DB, title string) *model.Collection {
	t.Helper()

	collection := model.Collection{Title: title}
	require.NoError(t, db.Create(&collection).Error)
	return &collection
}

func createTestProduct(t *testing.T, db *gorm.DB, collectionID uint, title, price string, inventory int) *model.Product {
	t.Helper()

	product := model.Product{
		Title:        title,
		Price:        decimal.RequireFromString(price),
		Inventory:    inventory,
		CollectionID: collectionID,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}
