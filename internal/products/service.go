package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/internal/catalog"
	"github.com/andradelabs/motopecas-backend/pkg/db"
	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
	"github.com/andradelabs/motopecas-backend/pkg/pagination"
)

// Service exposes catalog reads for the storefront and product management
// for the back office.
type Service interface {
	List(ctx context.Context, input ListProductsInput) (*ProductList, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
}

type service struct {
	client *db.Client
	repo   *Repository
	bikes  *catalog.Repository
}

// NewService builds the product service.
func NewService(client *db.Client, repo *Repository, bikes *catalog.Repository) (Service, error) {
	if client == nil || repo == nil || bikes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product service dependencies missing")
	}
	return &service{client: client, repo: repo, bikes: bikes}, nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*ProductList, error) {
	page := pagination.Normalize(input.Page, input.PerPage)

	items, total, err := s.repo.List(ctx, ListFilter{
		CategorySlug: input.CategorySlug,
		ModelID:      input.ModelID,
		Brand:        input.Brand,
		Search:       input.Search,
		FeaturedOnly: input.FeaturedOnly,
		Page:         page,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return &ProductList{Items: items, Total: total, Page: page.Number, PerPage: page.PerPage}, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	slug := catalog.Slugify(input.Name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name yields an empty slug")
	}

	taken, err := s.repo.CountBySlug(ctx, slug, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check slug")
	}
	if taken > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists")
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Brand:       input.Brand,
		Price:       input.Price,
		Stock:       input.Stock,
		WeightKg:    input.WeightKg,
		HeightCm:    input.HeightCm,
		WidthCm:     input.WidthCm,
		LengthCm:    input.LengthCm,
		IsActive:    input.IsActive,
		IsFeatured:  input.IsFeatured,
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			ColorName: v.ColorName,
			ColorHex:  v.ColorHex,
			Stock:     v.Stock,
		})
	}
	for i, url := range input.ImageURLs {
		product.Images = append(product.Images, models.ProductImage{URL: url, Position: i})
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, product); err != nil {
			return err
		}
		if len(input.ModelIDs) == 0 {
			return nil
		}
		bikes, err := s.bikes.WithTx(tx).FindModelsByIDs(ctx, input.ModelIDs)
		if err != nil {
			return err
		}
		if len(bikes) != len(input.ModelIDs) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown motorcycle model id")
		}
		return repo.ReplaceFitments(ctx, product, bikes)
	})
	if err != nil {
		if pkgErr := pkgerrors.As(err); pkgErr != nil {
			return nil, pkgErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if input.Name != nil {
		slug := catalog.Slugify(*input.Name)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name yields an empty slug")
		}
		taken, err := s.repo.CountBySlug(ctx, slug, &id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check slug")
		}
		if taken > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists")
		}
		product.Name = *input.Name
		product.Slug = slug
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.WeightKg != nil {
		product.WeightKg = *input.WeightKg
	}
	if input.HeightCm != nil {
		product.HeightCm = *input.HeightCm
	}
	if input.WidthCm != nil {
		product.WidthCm = *input.WidthCm
	}
	if input.LengthCm != nil {
		product.LengthCm = *input.LengthCm
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Update(ctx, product); err != nil {
			return err
		}
		if input.ModelIDs == nil {
			return nil
		}
		bikes, err := s.bikes.WithTx(tx).FindModelsByIDs(ctx, *input.ModelIDs)
		if err != nil {
			return err
		}
		if len(bikes) != len(*input.ModelIDs) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown motorcycle model id")
		}
		return repo.ReplaceFitments(ctx, product, bikes)
	})
	if err != nil {
		if pkgErr := pkgerrors.As(err); pkgErr != nil {
			return nil, pkgErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	if err := s.repo.SetStock(ctx, id, stock); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set stock")
	}
	return nil
}

