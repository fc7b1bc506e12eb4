package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/andradelabs/motopecas-backend/internal/catalog"
	"github.com/andradelabs/motopecas-backend/pkg/db"
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

type fixture struct {
	svc      Service
	repo     *Repository
	conn     *gorm.DB
	category models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(db.NewFromConn(conn), repo, catalog.NewRepository(conn))
	require.NoError(t, err)

	category := models.Category{Name: "Escapamentos", Slug: "escapamentos"}
	require.NoError(t, conn.Create(&category).Error)

	return &fixture{svc: svc, repo: repo, conn: conn, category: category}
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func createInput(f *fixture, name string) CreateProductInput {
	return CreateProductInput{
		CategoryID: f.category.ID,
		Name:       name,
		Brand:      "Akrapovic",
		Price:      money("899.90"),
		Stock:      10,
		WeightKg:   money("2.5"),
		HeightCm:   money("15"),
		WidthCm:    money("15"),
		LengthCm:   money("45"),
		IsActive:   true,
		Variants: []VariantInput{
			{ColorName: "Preto Fosco", ColorHex: "#1a1a1a", Stock: 6},
			{ColorName: "Cromado", ColorHex: "#c0c0c0", Stock: 4},
		},
		ImageURLs: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}
}

func TestCreateProductGeneratesSlugAndNested(t *testing.T) {
	f := newFixture(t)

	product, err := f.svc.Create(context.Background(), createInput(f, "Escapamento Esportivo CG 160"))
	require.NoError(t, err)
	assert.Equal(t, "escapamento-esportivo-cg-160", product.Slug)

	loaded, err := f.repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Variants, 2)
	require.Len(t, loaded.Images, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", loaded.MainImage())
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, createInput(f, "Escapamento Esportivo"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, createInput(f, "escapamento esportivo"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreateProductWithFitments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cg := models.MotorcycleModel{Brand: "Honda", Name: "CG 160", YearStart: 2016, YearEnd: 2024}
	require.NoError(t, f.conn.Create(&cg).Error)

	input := createInput(f, "Escapamento Esportivo")
	input.ModelIDs = []uuid.UUID{cg.ID}
	product, err := f.svc.Create(ctx, input)
	require.NoError(t, err)

	loaded, err := f.repo.GetBySlug(ctx, product.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Models, 1)
	assert.Equal(t, "CG 160", loaded.Models[0].Name)
}

func TestCreateProductUnknownModelRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	input := createInput(f, "Escapamento Esportivo")
	input.ModelIDs = []uuid.UUID{uuid.New()}
	_, err := f.svc.Create(ctx, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	var count int64
	require.NoError(t, f.conn.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count, "failed create must not leave a product behind")
}

func TestGetBySlugOnlyActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	input := createInput(f, "Escapamento Esportivo")
	input.IsActive = false
	product, err := f.svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = f.svc.GetBySlug(ctx, product.Slug)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		input := createInput(f, fmt.Sprintf("Escapamento %d", i))
		input.IsFeatured = i == 0
		_, err := f.svc.Create(ctx, input)
		require.NoError(t, err)
	}
	inactive := createInput(f, "Escapamento Oculto")
	inactive.IsActive = false
	_, err := f.svc.Create(ctx, inactive)
	require.NoError(t, err)

	list, err := f.svc.List(ctx, ListProductsInput{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total, "inactive products are hidden")
	assert.Len(t, list.Items, 2)

	featured, err := f.svc.List(ctx, ListProductsInput{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Len(t, featured.Items, 1)

	byCategory, err := f.svc.List(ctx, ListProductsInput{CategorySlug: "escapamentos"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), byCategory.Total)

	bySearch, err := f.svc.List(ctx, ListProductsInput{Search: "escapamento 1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), bySearch.Total)
}

func TestUpdateProductPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, createInput(f, "Escapamento Esportivo"))
	require.NoError(t, err)

	newPrice := money("949.90")
	updated, err := f.svc.Update(ctx, product.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "escapamento-esportivo", updated.Slug, "untouched fields keep their values")
}

func TestDecrementStockGuardsAgainstOverselling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product, err := f.svc.Create(ctx, createInput(f, "Escapamento Esportivo"))
	require.NoError(t, err)

	require.NoError(t, f.repo.DecrementStock(ctx, product.ID, 10))
	err = f.repo.DecrementStock(ctx, product.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSetStockValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.SetStock(ctx, uuid.New(), -1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	err = f.svc.SetStock(ctx, uuid.New(), 5)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
