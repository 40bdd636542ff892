package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tienda-backend/models"
	"tienda-backend/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func sampleOrder() *models.Order {
	orderID := uuid.New()
	return &models.Order{
		ID:           orderID,
		UserID:       uuid.New(),
		ShippingID:   uuid.New(),
		Subtotal:     25.00,
		ShippingCost: 8.00,
		Total:        33.00,
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), ProductSizeID: uuid.New(), Quantity: 2, Price: 10.00},
			{ID: uuid.New(), ProductID: uuid.New(), ProductSizeID: uuid.New(), Quantity: 1, Price: 5.00},
		},
		Payment: &models.Payment{
			ID:            uuid.New(),
			PaymentMethod: "card",
			Status:        models.PaymentStatusPending,
			Amount:        33.00,
		},
	}
}

func TestCreateWithItems_CommitsOnce(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(order.ID))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(order.Items[0].ID).
			AddRow(order.Items[1].ID))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(order.Payment.ID))
	mock.ExpectCommit()

	err := repo.CreateWithItems(context.Background(), order)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithItems_RollsBackOnItemFailure(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(order.ID))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_items"`)).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateWithItems(context.Background(), order)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderDelete_SoftDeletes(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET "deleted_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderDelete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET "deleted_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPaymentStatus_NoPaymentRecord(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status" FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	status, err := repo.PaymentStatus(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, "", status)
}

func TestPaymentStatus_Approved(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status" FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.PaymentStatusApproved))

	status, err := repo.PaymentStatus(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, status)
}

func TestOwnerID_SelectsOnlyOwnerColumn(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	owner := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "user_id" FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(owner))

	got, err := repo.OwnerID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, owner, got)
}
