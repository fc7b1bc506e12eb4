package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	"github.com/andradelabs/motopecas-backend/pkg/enums"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func seedOrder(t *testing.T, repo *Repository, sessionID uuid.UUID) *models.Order {
	t.Helper()
	order, err := repo.Create(context.Background(), &models.Order{
		SessionID:         sessionID,
		CustomerName:      "João da Silva",
		CustomerEmail:     "joao@example.com",
		AddressLine:       "Rua das Motos, 123",
		PostalCode:        "01310-100",
		PaymentMethod:     enums.PaymentMethodPix,
		Status:            enums.OrderStatusPending,
		Subtotal:          money("250.00"),
		ShippingFee:       money("15.00"),
		Discount:          money("50.00"),
		IncentiveDiscount: money("10.75"),
		Total:             money("204.25"),
		Items: []models.OrderItem{{
			LineItemID: "p-default",
			ProductID:  uuid.New(),
			Name:       "Escapamento Esportivo",
			UnitPrice:  money("125.00"),
			Quantity:   2,
		}},
	})
	require.NoError(t, err)
	return order
}

func TestListForSessionScopesBySession(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	mine := uuid.New()
	other := uuid.New()
	seedOrder(t, repo, mine)
	seedOrder(t, repo, mine)
	seedOrder(t, repo, other)

	orders, err := svc.ListForSession(ctx, mine)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Len(t, orders[0].Items, 1)
}

func TestGetForSessionHidesForeignOrders(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	order := seedOrder(t, repo, uuid.New())

	_, err = svc.GetForSession(ctx, uuid.New(), order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	loaded, err := svc.GetForSession(ctx, order.SessionID, order.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Total.Equal(money("204.25")))
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	order := seedOrder(t, repo, uuid.New())

	updated, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, updated.Status)

	// paid -> delivered skips shipped
	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusDelivered)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatus("refunded"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListAllFiltersByStatus(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	first := seedOrder(t, repo, uuid.New())
	seedOrder(t, repo, uuid.New())
	_, err = svc.UpdateStatus(ctx, first.ID, enums.OrderStatusPaid)
	require.NoError(t, err)

	paid := enums.OrderStatusPaid
	orders, err := svc.ListAll(ctx, &paid)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)
}
