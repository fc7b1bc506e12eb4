package controllers

import (
	"net/http"
	"strings"

	"github.com/andradelabs/motopecas-backend/api/responses"
	"github.com/andradelabs/motopecas-backend/api/validators"
	"github.com/andradelabs/motopecas-backend/internal/catalog"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
)

// ListCategories serves the storefront navigation taxonomy.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// ListModels serves the motorcycle models used by the compatibility picker.
func ListModels(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand := strings.TrimSpace(r.URL.Query().Get("brand"))

		bikes, err := svc.ListModels(r.Context(), brand)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bikes)
	}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

// AdminCreateCategory registers a new category.
func AdminCreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

type createModelRequest struct {
	Brand     string `json:"brand" validate:"required,min=2,max=60"`
	Name      string `json:"name" validate:"required,min=1,max=80"`
	YearStart int    `json:"year_start" validate:"required,min=1950,max=2100"`
	YearEnd   int    `json:"year_end" validate:"omitempty,min=1950,max=2100"`
}

// AdminCreateModel registers a motorcycle model for product fitments.
func AdminCreateModel(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createModelRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bike, err := svc.CreateModel(r.Context(), catalog.CreateModelInput{
			Brand:     payload.Brand,
			Name:      payload.Name,
			YearStart: payload.YearStart,
			YearEnd:   payload.YearEnd,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bike)
	}
}
