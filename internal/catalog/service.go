package catalog

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

// Service exposes taxonomy reads for the storefront and admin writes.
type Service interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListModels(ctx context.Context, brand string) ([]models.MotorcycleModel, error)
	CreateModel(ctx context.Context, input CreateModelInput) (*models.MotorcycleModel, error)
}

// CreateModelInput is the validated payload to register a motorcycle model.
type CreateModelInput struct {
	Brand     string
	Name      string
	YearStart int
	YearEnd   int
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return categories, nil
}

func (s *service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name yields an empty slug")
	}

	taken, err := s.repo.CountCategoriesBySlug(ctx, slug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category slug")
	}
	if taken > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this name already exists")
	}

	category, err := s.repo.CreateCategory(ctx, &models.Category{Name: strings.TrimSpace(name), Slug: slug})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return category, nil
}

func (s *service) ListModels(ctx context.Context, brand string) ([]models.MotorcycleModel, error) {
	bikes, err := s.repo.ListModels(ctx, brand)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list motorcycle models")
	}
	return bikes, nil
}

func (s *service) CreateModel(ctx context.Context, input CreateModelInput) (*models.MotorcycleModel, error) {
	if input.YearEnd != 0 && input.YearEnd < input.YearStart {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year range end precedes start")
	}
	yearEnd := input.YearEnd
	if yearEnd == 0 {
		// Open-ended range: still in production.
		yearEnd = time.Now().Year()
	}

	bike, err := s.repo.CreateModel(ctx, &models.MotorcycleModel{
		Brand:     strings.TrimSpace(input.Brand),
		Name:      strings.TrimSpace(input.Name),
		YearStart: input.YearStart,
		YearEnd:   yearEnd,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create motorcycle model")
	}
	return bike, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// Slugify lowercases the value and collapses everything outside [a-z0-9]
// into single dashes. Accented characters common in Portuguese names are
// transliterated first.
func Slugify(value string) string {
	lowered := accentReplacer.Replace(strings.ToLower(strings.TrimSpace(value)))
	return strings.Trim(slugStrip.ReplaceAllString(lowered, "-"), "-")
}
