package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/internal/cart"
	"github.com/andradelabs/motopecas-backend/internal/orders"
	"github.com/andradelabs/motopecas-backend/internal/products"
	"github.com/andradelabs/motopecas-backend/pkg/config"
	"github.com/andradelabs/motopecas-backend/pkg/db"
	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	"github.com/andradelabs/motopecas-backend/pkg/enums"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
)

// Totals is the checkout-time money breakdown shown to the customer and
// written to the order. The payment incentive lives here only; it is never
// persisted back into the cart.
type Totals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingFee       decimal.Decimal `json:"shipping_fee"`
	Discount          decimal.Decimal `json:"discount"`
	IncentiveDiscount decimal.Decimal `json:"incentive_discount"`
	Total             decimal.Decimal `json:"total"`
}

// SubmitInput is the validated checkout payload.
type SubmitInput struct {
	CustomerName  string
	CustomerEmail string
	AddressLine   string
	PostalCode    string
	PaymentMethod enums.PaymentMethod
}

// Service derives checkout totals and turns a cart into an order.
type Service interface {
	Totals(state *cart.State, method enums.PaymentMethod) Totals
	Preview(ctx context.Context, sessionID uuid.UUID, method enums.PaymentMethod) (*Totals, error)
	Submit(ctx context.Context, sessionID uuid.UUID, input SubmitInput) (*models.Order, error)
}

type service struct {
	client        *db.Client
	carts         cart.Service
	orders        *orders.Repository
	products      *products.Repository
	minimumOrder  decimal.Decimal
	incentiveRate decimal.Decimal
	logg          *logger.Logger
}

// NewService builds the checkout service. The minimum order value and the
// instant-payment incentive rate come from configuration.
func NewService(
	client *db.Client,
	carts cart.Service,
	orderRepo *orders.Repository,
	productRepo *products.Repository,
	cfg config.CheckoutConfig,
	logg *logger.Logger,
) (Service, error) {
	if client == nil || carts == nil || orderRepo == nil || productRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout service dependencies missing")
	}
	return &service{
		client:        client,
		carts:         carts,
		orders:        orderRepo,
		products:      productRepo,
		minimumOrder:  cfg.MinimumOrder(),
		incentiveRate: cfg.PixIncentiveRate(),
		logg:          logg,
	}, nil
}

// Totals recomputes the payable amount from the cart state. The subtotal is
// always re-derived from the items rather than trusted from a stale field.
// Instant-settlement payments get the incentive off the already-discounted
// total, recomputed on every call so switching methods never leaks a stale
// value.
func (s *service) Totals(state *cart.State, method enums.PaymentMethod) Totals {
	subtotal := state.ItemsSubtotal()
	base := subtotal.Add(state.ShippingFee).Sub(state.Discount)

	incentive := decimal.Zero
	if method.InstantSettlement() {
		incentive = base.Mul(s.incentiveRate).Round(2)
	}

	return Totals{
		Subtotal:          subtotal.Round(2),
		ShippingFee:       state.ShippingFee.Round(2),
		Discount:          state.Discount.Round(2),
		IncentiveDiscount: incentive,
		Total:             base.Sub(incentive).Round(2),
	}
}

func (s *service) Preview(ctx context.Context, sessionID uuid.UUID, method enums.PaymentMethod) (*Totals, error) {
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", method))
	}
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	totals := s.Totals(state, method)
	return &totals, nil
}

func (s *service) Submit(ctx context.Context, sessionID uuid.UUID, input SubmitInput) (*models.Order, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(state.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !state.FeeQuoted {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "calculate shipping before checking out")
	}
	if state.TotalPrice().LessThan(s.minimumOrder) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("minimum order value is R$ %s", s.minimumOrder.StringFixed(2)))
	}

	totals := s.Totals(state, input.PaymentMethod)

	order := &models.Order{
		SessionID:         sessionID,
		CustomerName:      input.CustomerName,
		CustomerEmail:     input.CustomerEmail,
		AddressLine:       input.AddressLine,
		PostalCode:        input.PostalCode,
		PaymentMethod:     input.PaymentMethod,
		Status:            enums.OrderStatusPending,
		Subtotal:          totals.Subtotal,
		ShippingFee:       totals.ShippingFee,
		Discount:          totals.Discount,
		IncentiveDiscount: totals.IncentiveDiscount,
		Total:             totals.Total,
	}
	if state.CouponCode != "" {
		code := state.CouponCode
		order.CouponCode = &code
	}

	for _, item := range state.Items {
		productID, err := productIDFromLineItem(item.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "corrupt cart line id")
		}
		snapshot := models.OrderItem{
			LineItemID: item.ID,
			ProductID:  productID,
			Name:       item.Name,
			ImageURL:   item.ImageURL,
			UnitPrice:  item.Price,
			Quantity:   item.Quantity,
		}
		if item.VariantLabel != "" {
			label := item.VariantLabel
			snapshot.VariantLabel = &label
		}
		order.Items = append(order.Items, snapshot)
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		productRepo := s.products.WithTx(tx)
		for _, item := range order.Items {
			if err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeConflict,
						fmt.Sprintf("insufficient stock for %s", item.Name))
				}
				return err
			}
		}
		_, err := s.orders.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		if pkgErr := pkgerrors.As(err); pkgErr != nil {
			return nil, pkgErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit order")
	}

	// The order is durable at this point. Clearing the cart is best effort;
	// a stale blob only means the customer sees an already-purchased cart.
	if _, err := s.carts.Clear(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.cart_clear_failed")
	}

	return order, nil
}

// productIDFromLineItem recovers the product id from the composite cart
// line id ("<uuid>-<variant uuid>" or "<uuid>-default").
func productIDFromLineItem(lineItemID string) (uuid.UUID, error) {
	if len(lineItemID) < 36 {
		return uuid.Nil, fmt.Errorf("line item id %q too short", lineItemID)
	}
	id, err := uuid.Parse(lineItemID[:36])
	if err != nil {
		return uuid.Nil, fmt.Errorf("line item id %q: %w", lineItemID, err)
	}
	if len(lineItemID) > 36 && !strings.HasPrefix(lineItemID[36:], "-") {
		return uuid.Nil, fmt.Errorf("line item id %q missing variant separator", lineItemID)
	}
	return id, nil
}
