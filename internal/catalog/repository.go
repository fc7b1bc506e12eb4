package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
)

// Repository persists the storefront taxonomy: categories and the
// motorcycle models products declare compatibility with.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory persists a new category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CountCategoriesBySlug reports whether a category slug is already taken.
func (r *Repository) CountCategoriesBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count, err
}

// ListModels returns motorcycle models, optionally filtered by brand,
// ordered brand then name.
func (r *Repository) ListModels(ctx context.Context, brand string) ([]models.MotorcycleModel, error) {
	query := r.db.WithContext(ctx).Order("brand ASC, name ASC")
	if brand != "" {
		query = query.Where("LOWER(brand) = LOWER(?)", brand)
	}
	var bikes []models.MotorcycleModel
	if err := query.Find(&bikes).Error; err != nil {
		return nil, err
	}
	return bikes, nil
}

// CreateModel persists a new motorcycle model.
func (r *Repository) CreateModel(ctx context.Context, bike *models.MotorcycleModel) (*models.MotorcycleModel, error) {
	if err := r.db.WithContext(ctx).Create(bike).Error; err != nil {
		return nil, err
	}
	return bike, nil
}

// FindModelsByIDs loads the given motorcycle models. Callers compare the
// result length against the requested ids to detect unknown ones.
func (r *Repository) FindModelsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MotorcycleModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var bikes []models.MotorcycleModel
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&bikes).Error
	if err != nil {
		return nil, err
	}
	return bikes, nil
}
