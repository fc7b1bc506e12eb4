package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Escapamentos":          "escapamentos",
		"Suspensão e Direção":   "suspensao-e-direcao",
		"  Freios / Embreagem ": "freios-embreagem",
		"!!!":                   "",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	svc, err := NewService(NewRepository(openTestDB(t)))
	require.NoError(t, err)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, "Escapamentos")
	require.NoError(t, err)
	assert.Equal(t, "escapamentos", created.Slug)

	_, err = svc.CreateCategory(ctx, "escapamentos")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestListCategoriesOrdered(t *testing.T) {
	svc, err := NewService(NewRepository(openTestDB(t)))
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"Pneus", "Escapamentos", "Freios"} {
		_, err := svc.CreateCategory(ctx, name)
		require.NoError(t, err)
	}

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Escapamentos", categories[0].Name)
	assert.Equal(t, "Pneus", categories[2].Name)
}

func TestCreateModelValidatesYearRange(t *testing.T) {
	svc, err := NewService(NewRepository(openTestDB(t)))
	require.NoError(t, err)

	_, err = svc.CreateModel(context.Background(), CreateModelInput{
		Brand:     "Honda",
		Name:      "CG 160",
		YearStart: 2020,
		YearEnd:   2018,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListModelsFiltersByBrand(t *testing.T) {
	svc, err := NewService(NewRepository(openTestDB(t)))
	require.NoError(t, err)
	ctx := context.Background()

	seed := []CreateModelInput{
		{Brand: "Honda", Name: "CG 160", YearStart: 2016, YearEnd: 2024},
		{Brand: "Honda", Name: "CB 300", YearStart: 2009, YearEnd: 2015},
		{Brand: "Yamaha", Name: "Fazer 250", YearStart: 2018, YearEnd: 2024},
	}
	for _, input := range seed {
		_, err := svc.CreateModel(ctx, input)
		require.NoError(t, err)
	}

	hondas, err := svc.ListModels(ctx, "honda")
	require.NoError(t, err)
	require.Len(t, hondas, 2)
	assert.Equal(t, "CB 300", hondas[0].Name)

	all, err := svc.ListModels(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
