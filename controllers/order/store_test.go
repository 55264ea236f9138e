package orderControllers

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IvanTurizo/trigo-pan-expres/models"
)

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

func testOrder() *models.Order {
	return &models.Order{
		CustomerName:    "Ana Gomez",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "3001234567",
		DeliveryAddress: "Calle 10 #20-30, Centro",
		Total:           2000,
		Status:          models.OrderStatusPending,
		PaymentMethod:   models.PaymentMethodCash,
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Pan", Price: 1000, Quantity: 2},
		},
	}
}

func TestGormOrderStoreCreateOrder(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormOrderStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	order := testOrder()
	err := store.CreateOrder(context.Background(), order)

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID, "id is assigned before the insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderStoreCreateOrderRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGormOrderStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := store.CreateOrder(context.Background(), testOrder())

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
