package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/config"
	"github.com/andradelabs/motopecas-backend/pkg/db/models"
)

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN")
}

func TestSQLiteClientMigratesModels(t *testing.T) {
	client, err := NewSQLite()
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.DB().AutoMigrate(models.All()...))
	require.NoError(t, client.Ping(context.Background()))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client, err := NewSQLite()
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.DB().AutoMigrate(&models.Category{}))

	sentinel := fmt.Errorf("boom")
	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&models.Category{Name: "Escapamentos", Slug: "escapamentos"}).Error; err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	var count int64
	require.NoError(t, client.DB().Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}
