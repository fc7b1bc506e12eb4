package checkout

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

	"github.com/andradelabs/motopecas-backend/internal/cart"
	"github.com/andradelabs/motopecas-backend/internal/orders"
	"github.com/andradelabs/motopecas-backend/internal/products"
	"github.com/andradelabs/motopecas-backend/pkg/config"
	"github.com/andradelabs/motopecas-backend/pkg/db"
	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	"github.com/andradelabs/motopecas-backend/pkg/enums"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

type memoryCartStore struct {
	states map[uuid.UUID]*cart.State
}

func (m *memoryCartStore) Load(ctx context.Context, sessionID uuid.UUID) (*cart.State, error) {
	if state, ok := m.states[sessionID]; ok {
		return state, nil
	}
	return cart.NewState(), nil
}

func (m *memoryCartStore) Save(ctx context.Context, sessionID uuid.UUID, state *cart.State) error {
	m.states[sessionID] = state
	return nil
}

type fixture struct {
	svc       Service
	carts     cart.Service
	cartStore *memoryCartStore
	orderRepo *orders.Repository
	conn      *gorm.DB
	product   *models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))

	category := models.Category{Name: "Escapamentos", Slug: "escapamentos"}
	require.NoError(t, conn.Create(&category).Error)
	product := models.Product{
		CategoryID: category.ID,
		Name:       "Escapamento Esportivo",
		Slug:       "escapamento-esportivo",
		Brand:      "Akrapovic",
		Price:      money("125.00"),
		Stock:      10,
		WeightKg:   money("2.5"),
		HeightCm:   money("15"),
		WidthCm:    money("15"),
		LengthCm:   money("45"),
		IsActive:   true,
	}
	require.NoError(t, conn.Create(&product).Error)

	productRepo := products.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)
	cartStore := &memoryCartStore{states: map[uuid.UUID]*cart.State{}}
	carts, err := cart.NewService(cartStore, productRepo, nil)
	require.NoError(t, err)

	svc, err := NewService(db.NewFromConn(conn), carts, orderRepo, productRepo, config.CheckoutConfig{}, nil)
	require.NoError(t, err)

	return &fixture{
		svc:       svc,
		carts:     carts,
		cartStore: cartStore,
		orderRepo: orderRepo,
		conn:      conn,
		product:   &product,
	}
}

// fillCart adds two units (250.00 subtotal) and quotes a 15.00 fee.
func fillCart(t *testing.T, f *fixture, sessionID uuid.UUID) {
	t.Helper()
	_, err := f.carts.AddItem(context.Background(), sessionID, cart.AddItemInput{ProductID: f.product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.carts.SetShippingFee(context.Background(), sessionID, money("15.00"))
	require.NoError(t, err)
}

func submitInput(method enums.PaymentMethod) SubmitInput {
	return SubmitInput{
		CustomerName:  "João da Silva",
		CustomerEmail: "joao@example.com",
		AddressLine:   "Rua das Motos, 123",
		PostalCode:    "01310-100",
		PaymentMethod: method,
	}
}

func TestTotalsWithoutIncentive(t *testing.T) {
	f := newFixture(t)

	state := cart.NewState()
	state.Add(cart.LineItem{ID: "x-default", Price: money("125.00"), Quantity: 2})
	state.SetShippingFee(money("15.00"))
	require.True(t, state.ApplyCoupon("MOTO20"))

	totals := f.svc.Totals(state, enums.PaymentMethodCreditCard)
	assert.True(t, totals.Subtotal.Equal(money("250.00")))
	assert.True(t, totals.Discount.Equal(money("50.00")))
	assert.True(t, totals.IncentiveDiscount.IsZero())
	assert.True(t, totals.Total.Equal(money("215.00")), "total %s", totals.Total)
}

func TestTotalsPixIncentiveAppliesLast(t *testing.T) {
	f := newFixture(t)

	state := cart.NewState()
	state.Add(cart.LineItem{ID: "x-default", Price: money("125.00"), Quantity: 2})
	state.SetShippingFee(money("15.00"))
	require.True(t, state.ApplyCoupon("MOTO20"))

	totals := f.svc.Totals(state, enums.PaymentMethodPix)
	// 5% of the already-discounted 215.00
	assert.True(t, totals.IncentiveDiscount.Equal(money("10.75")), "incentive %s", totals.IncentiveDiscount)
	assert.True(t, totals.Total.Equal(money("204.25")), "total %s", totals.Total)

	// Switching back recomputes with no residue.
	again := f.svc.Totals(state, enums.PaymentMethodBoleto)
	assert.True(t, again.IncentiveDiscount.IsZero())
	assert.True(t, again.Total.Equal(money("215.00")))
}

func TestSubmitWritesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	sessionID := uuid.New()
	fillCart(t, f, sessionID)
	_, applied, err := f.carts.ApplyCoupon(context.Background(), sessionID, "MOTO20")
	require.NoError(t, err)
	require.True(t, applied)

	order, err := f.svc.Submit(context.Background(), sessionID, submitInput(enums.PaymentMethodPix))
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(money("204.25")), "total %s", order.Total)
	assert.True(t, order.IncentiveDiscount.Equal(money("10.75")))
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "MOTO20", *order.CouponCode)
	require.Len(t, order.Items, 1)
	assert.Equal(t, f.product.ID, order.Items[0].ProductID)

	var stored models.Product
	require.NoError(t, f.conn.First(&stored, "id = ?", f.product.ID).Error)
	assert.Equal(t, 8, stored.Stock, "stock decremented by the ordered quantity")

	state, err := f.carts.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Empty(t, state.Items, "cart cleared after submit")
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), uuid.New(), submitInput(enums.PaymentMethodPix))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitRequiresQuotedShipping(t *testing.T) {
	f := newFixture(t)
	sessionID := uuid.New()
	_, err := f.carts.AddItem(context.Background(), sessionID, cart.AddItemInput{ProductID: f.product.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), sessionID, submitInput(enums.PaymentMethodPix))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitMinimumOrderBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 39.99 cart total is rejected.
	below := uuid.New()
	f.cartStore.states[below] = &cart.State{
		Items:     []cart.LineItem{{ID: fmt.Sprintf("%s-default", f.product.ID), Name: "Peça", Price: money("39.99"), Quantity: 1}},
		FeeQuoted: true,
	}
	_, err := f.svc.Submit(ctx, below, submitInput(enums.PaymentMethodCreditCard))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	// Exactly 40.00 passes.
	exact := uuid.New()
	f.cartStore.states[exact] = &cart.State{
		Items:     []cart.LineItem{{ID: fmt.Sprintf("%s-default", f.product.ID), Name: "Peça", Price: money("40.00"), Quantity: 1}},
		FeeQuoted: true,
	}
	order, err := f.svc.Submit(ctx, exact, submitInput(enums.PaymentMethodCreditCard))
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(money("40.00")))
}

func TestSubmitInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	sessionID := uuid.New()
	_, err := f.carts.AddItem(context.Background(), sessionID, cart.AddItemInput{ProductID: f.product.ID, Quantity: 11})
	require.NoError(t, err)
	_, err = f.carts.SetShippingFee(context.Background(), sessionID, money("15.00"))
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), sessionID, submitInput(enums.PaymentMethodPix))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	var count int64
	require.NoError(t, f.conn.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "failed submit must not write an order")

	state, err := f.carts.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, state.Items, "cart untouched on failure")
}

func TestSubmitRejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)
	sessionID := uuid.New()
	fillCart(t, f, sessionID)

	_, err := f.svc.Submit(context.Background(), sessionID, submitInput(enums.PaymentMethod("cheque")))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
