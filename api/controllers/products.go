package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/api/responses"
	"github.com/andradelabs/motopecas-backend/api/validators"
	"github.com/andradelabs/motopecas-backend/internal/products"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
)

// ListProducts serves the storefront catalog with filters and pagination.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perPage, err := validators.ParseQueryInt(r, "per_page", 24, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		featured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := products.ListProductsInput{
			CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
			Brand:        strings.TrimSpace(r.URL.Query().Get("brand")),
			Search:       strings.TrimSpace(r.URL.Query().Get("q")),
			FeaturedOnly: featured,
			Page:         page,
			PerPage:      perPage,
		}
		if raw := r.URL.Query().Get("model_id"); raw != "" {
			modelID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid model id"))
				return
			}
			input.ModelID = &modelID
		}

		list, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListProductsForModel serves the compatibility view: every product fitted
// to one motorcycle model.
func ListProductsForModel(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modelID, err := uuid.Parse(chi.URLParam(r, "modelID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "model id must be a valid uuid"))
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perPage, err := validators.ParseQueryInt(r, "per_page", 24, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), products.ListProductsInput{
			ModelID: &modelID,
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetProduct serves the product detail page by slug.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		product, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type variantRequest struct {
	ColorName string `json:"color_name" validate:"required,max=60"`
	ColorHex  string `json:"color_hex" validate:"required,hexcolor"`
	Stock     int    `json:"stock" validate:"min=0"`
}

type createProductRequest struct {
	CategoryID  string           `json:"category_id" validate:"required,uuid"`
	Name        string           `json:"name" validate:"required,min=3,max=160"`
	Description *string          `json:"description"`
	Brand       string           `json:"brand" validate:"required,max=80"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock" validate:"min=0"`
	WeightKg    decimal.Decimal  `json:"weight_kg"`
	HeightCm    decimal.Decimal  `json:"height_cm"`
	WidthCm     decimal.Decimal  `json:"width_cm"`
	LengthCm    decimal.Decimal  `json:"length_cm"`
	IsActive    bool             `json:"is_active"`
	IsFeatured  bool             `json:"is_featured"`
	Variants    []variantRequest `json:"variants" validate:"dive"`
	ImageURLs   []string         `json:"image_urls" validate:"dive,url"`
	ModelIDs    []string         `json:"model_ids" validate:"dive,uuid"`
}

func (p createProductRequest) toInput() (products.CreateProductInput, error) {
	if p.Price.LessThanOrEqual(decimal.Zero) {
		return products.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if p.WeightKg.IsNegative() || p.HeightCm.IsNegative() || p.WidthCm.IsNegative() || p.LengthCm.IsNegative() {
		return products.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "dimensions must be non-negative")
	}

	categoryID, err := uuid.Parse(p.CategoryID)
	if err != nil {
		return products.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
	}

	input := products.CreateProductInput{
		CategoryID:  categoryID,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Price:       p.Price,
		Stock:       p.Stock,
		WeightKg:    p.WeightKg,
		HeightCm:    p.HeightCm,
		WidthCm:     p.WidthCm,
		LengthCm:    p.LengthCm,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
		ImageURLs:   p.ImageURLs,
	}
	for _, v := range p.Variants {
		input.Variants = append(input.Variants, products.VariantInput{
			ColorName: v.ColorName,
			ColorHex:  v.ColorHex,
			Stock:     v.Stock,
		})
	}
	for _, raw := range p.ModelIDs {
		modelID, err := uuid.Parse(raw)
		if err != nil {
			return products.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid model id")
		}
		input.ModelIDs = append(input.ModelIDs, modelID)
	}
	return input, nil
}

// AdminCreateProduct registers a new catalog listing.
func AdminCreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Name        *string          `json:"name" validate:"omitempty,min=3,max=160"`
	Description *string          `json:"description"`
	Brand       *string          `json:"brand" validate:"omitempty,max=80"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	WeightKg    *decimal.Decimal `json:"weight_kg"`
	HeightCm    *decimal.Decimal `json:"height_cm"`
	WidthCm     *decimal.Decimal `json:"width_cm"`
	LengthCm    *decimal.Decimal `json:"length_cm"`
	IsActive    *bool            `json:"is_active"`
	IsFeatured  *bool            `json:"is_featured"`
	ModelIDs    *[]string        `json:"model_ids" validate:"omitempty,dive,uuid"`
}

// AdminUpdateProduct applies a partial update to a listing.
func AdminUpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Price != nil && payload.Price.LessThanOrEqual(decimal.Zero) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive"))
			return
		}

		input := products.UpdateProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Brand:       payload.Brand,
			Price:       payload.Price,
			Stock:       payload.Stock,
			WeightKg:    payload.WeightKg,
			HeightCm:    payload.HeightCm,
			WidthCm:     payload.WidthCm,
			LengthCm:    payload.LengthCm,
			IsActive:    payload.IsActive,
			IsFeatured:  payload.IsFeatured,
		}
		if payload.CategoryID != nil {
			categoryID, err := uuid.Parse(*payload.CategoryID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
				return
			}
			input.CategoryID = &categoryID
		}
		if payload.ModelIDs != nil {
			modelIDs := make([]uuid.UUID, 0, len(*payload.ModelIDs))
			for _, raw := range *payload.ModelIDs {
				modelID, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid model id"))
					return
				}
				modelIDs = append(modelIDs, modelID)
			}
			input.ModelIDs = &modelIDs
		}

		product, err := svc.Update(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a listing.
func AdminDeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.Delete(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type setStockRequest struct {
	Stock int `json:"stock" validate:"min=0"`
}

// AdminSetStock overwrites a product's stock count.
func AdminSetStock(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload setStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetStock(r.Context(), productID, payload.Stock); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product_id": productID, "stock": payload.Stock})
	}
}
