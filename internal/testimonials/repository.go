package testimonials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
)

// Repository persists customer reviews.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new, not yet approved testimonial.
func (r *Repository) Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error) {
	if err := r.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return nil, err
	}
	return testimonial, nil
}

// List returns testimonials newest first, optionally only approved ones.
func (r *Repository) List(ctx context.Context, approvedOnly bool) ([]models.Testimonial, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}
	var items []models.Testimonial
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Approve flips the approved flag and returns the updated record.
func (r *Repository) Approve(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("id = ?", id).
		UpdateColumn("approved", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var testimonial models.Testimonial
	if err := r.db.WithContext(ctx).First(&testimonial, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// Delete removes a testimonial.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Testimonial{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
