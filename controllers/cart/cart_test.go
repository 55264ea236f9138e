package cartControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IvanTurizo/trigo-pan-expres/cart"
)

const sess = "sess_cart"

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newCartRouter(db *gorm.DB, store *cart.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("session_id", sess) })

	r.GET("/store/cart", GetCart(store))
	r.POST("/store/cart/items", AddCartItem(db, store))
	r.PUT("/store/cart/items/:product_id", UpdateCartItem(store))
	r.DELETE("/store/cart/items/:product_id", DeleteCartItem(store))
	r.DELETE("/store/cart", ClearCart(store))
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func productRow(mock sqlmock.Sqlmock) {
	rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "image_url", "category", "is_active"}).
		AddRow("p1", "Pan Francés", "Pan crujiente", 1000.0, "https://cdn.trigopan.co/pan.jpg", "pan", true)
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(rows)
}

type cartResponse struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
}

func TestAddCartItemSnapshotsProduct(t *testing.T) {
	db, mock := newMockDB(t)
	store := cart.NewStore(time.Hour)
	r := newCartRouter(db, store)

	productRow(mock)
	w := perform(r, http.MethodPost, "/store/cart/items", `{"product_id":"p1"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Pan Francés", resp.Items[0].Name)
	assert.Equal(t, 1000.0, resp.Items[0].Price)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, 1000.0, resp.Total)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db, mock := newMockDB(t)
	store := cart.NewStore(time.Hour)
	r := newCartRouter(db, store)

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := perform(r, http.MethodPost, "/store/cart/items", `{"product_id":"ghost"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product does not exist")
	assert.Empty(t, store.Items(sess))
}

func TestUpdateCartItemQuantityZeroRemoves(t *testing.T) {
	db, _ := newMockDB(t)
	store := cart.NewStore(time.Hour)
	store.AddItem(sess, cart.Item{ProductID: "p1", Price: 1000})
	r := newCartRouter(db, store)

	w := perform(r, http.MethodPut, "/store/cart/items/p1", `{"quantity":0}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0.0, resp.Total)
}

func TestClearCart(t *testing.T) {
	db, _ := newMockDB(t)
	store := cart.NewStore(time.Hour)
	store.AddItem(sess, cart.Item{ProductID: "p1", Price: 1000})
	store.AddItem(sess, cart.Item{ProductID: "p2", Price: 2000})
	r := newCartRouter(db, store)

	w := perform(r, http.MethodDelete, "/store/cart", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.Items(sess))
}

func TestGetCartTotalsCurrentItems(t *testing.T) {
	db, _ := newMockDB(t)
	store := cart.NewStore(time.Hour)
	store.AddItem(sess, cart.Item{ProductID: "p1", Price: 1000})
	store.UpdateQuantity(sess, "p1", 3)
	r := newCartRouter(db, store)

	w := perform(r, http.MethodGet, "/store/cart", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3000.0, resp.Total)
}
