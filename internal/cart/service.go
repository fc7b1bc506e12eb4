package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
)

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the cart operations for one storefront session.
type Service interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*State, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, input AddItemInput) (*State, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, itemID string) (*State, error)
	UpdateQuantity(ctx context.Context, sessionID uuid.UUID, itemID string, quantity int) (*State, error)
	Clear(ctx context.Context, sessionID uuid.UUID) (*State, error)
	SetShippingFee(ctx context.Context, sessionID uuid.UUID, fee decimal.Decimal) (*State, error)
	ApplyCoupon(ctx context.Context, sessionID uuid.UUID, code string) (*State, bool, error)
}

type service struct {
	store    Store
	products productLoader
	logg     *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(store Store, products productLoader, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{store: store, products: products, logg: logg}, nil
}

// AddItemInput identifies what to add; everything else is snapshotted from
// the catalog at add time.
type AddItemInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// LineItemID derives the composite cart line id for a product and optional
// variant.
func LineItemID(productID uuid.UUID, variantID *uuid.UUID) string {
	if variantID == nil {
		return fmt.Sprintf("%s-default", productID)
	}
	return fmt.Sprintf("%s-%s", productID, variantID)
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*State, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID uuid.UUID, input AddItemInput) (*State, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	item := LineItem{
		ID:       LineItemID(product.ID, input.VariantID),
		Name:     product.Name,
		Price:    product.Price,
		Quantity: input.Quantity,
		ImageURL: product.MainImage(),
		WeightKg: product.WeightKg,
		HeightCm: product.HeightCm,
		WidthCm:  product.WidthCm,
		LengthCm: product.LengthCm,
	}

	if input.VariantID != nil {
		variant := findVariant(product, *input.VariantID)
		if variant == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
		}
		item.VariantLabel = variant.ColorName
	}

	return s.mutate(ctx, sessionID, func(state *State) {
		state.Add(item)
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID uuid.UUID, itemID string) (*State, error) {
	return s.mutate(ctx, sessionID, func(state *State) {
		state.Remove(itemID)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, itemID string, quantity int) (*State, error) {
	return s.mutate(ctx, sessionID, func(state *State) {
		state.UpdateQuantity(itemID, quantity)
	})
}

func (s *service) Clear(ctx context.Context, sessionID uuid.UUID) (*State, error) {
	return s.mutate(ctx, sessionID, func(state *State) {
		state.Clear()
	})
}

func (s *service) SetShippingFee(ctx context.Context, sessionID uuid.UUID, fee decimal.Decimal) (*State, error) {
	if fee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping fee must be non-negative")
	}
	return s.mutate(ctx, sessionID, func(state *State) {
		state.SetShippingFee(fee)
	})
}

func (s *service) ApplyCoupon(ctx context.Context, sessionID uuid.UUID, code string) (*State, bool, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	applied := state.ApplyCoupon(code)
	if !applied {
		return state, false, nil
	}

	s.persist(ctx, sessionID, state)
	return state, true, nil
}

// mutate loads, applies fn and persists. Persistence is best effort: a
// failed write logs a warning and the in-memory state is still returned,
// so the session keeps working against a possibly stale blob.
func (s *service) mutate(ctx context.Context, sessionID uuid.UUID, fn func(*State)) (*State, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(state)
	s.persist(ctx, sessionID, state)
	return state, nil
}

func (s *service) persist(ctx context.Context, sessionID uuid.UUID, state *State) {
	if err := s.store.Save(ctx, sessionID, state); err != nil && s.logg != nil {
		ctx = s.logg.WithSessionID(ctx, sessionID.String())
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.persist_failed")
	}
}

func findVariant(product *models.Product, variantID uuid.UUID) *models.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			return &product.Variants[i]
		}
	}
	return nil
}
