package testimonials

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

// Service handles customer reviews. Submissions start hidden and only show
// on the storefront once the back office approves them.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Testimonial, error)
	ListApproved(ctx context.Context) ([]models.Testimonial, error)
	ListAll(ctx context.Context) ([]models.Testimonial, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmitInput is the validated review payload.
type SubmitInput struct {
	Name    string
	Message string
	Rating  int
}

type service struct {
	repo *Repository
}

// NewService builds the testimonials service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "testimonials repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Testimonial, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and message are required")
	}

	testimonial, err := s.repo.Create(ctx, &models.Testimonial{
		Name:    name,
		Message: message,
		Rating:  input.Rating,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create testimonial")
	}
	return testimonial, nil
}

func (s *service) ListApproved(ctx context.Context) ([]models.Testimonial, error) {
	items, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list testimonials")
	}
	return items, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list testimonials")
	}
	return items, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	testimonial, err := s.repo.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve testimonial")
	}
	return testimonial, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete testimonial")
	}
	return nil
}
