package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog listing. Price and physical dimensions are
// snapshotted into carts and orders at add time, never re-read afterwards.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Name        string          `gorm:"column:name;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	Description *string         `gorm:"column:description"`
	Brand       string          `gorm:"column:brand;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`

	// Physical attributes used by the shipping box calculation.
	WeightKg decimal.Decimal `gorm:"column:weight_kg;type:numeric(8,3);not null;default:0"`
	HeightCm decimal.Decimal `gorm:"column:height_cm;type:numeric(8,2);not null;default:0"`
	WidthCm  decimal.Decimal `gorm:"column:width_cm;type:numeric(8,2);not null;default:0"`
	LengthCm decimal.Decimal `gorm:"column:length_cm;type:numeric(8,2);not null;default:0"`

	IsActive   bool `gorm:"column:is_active;not null;default:true"`
	IsFeatured bool `gorm:"column:is_featured;not null;default:false"`

	Variants []ProductVariant  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images   []ProductImage    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Models   []MotorcycleModel `gorm:"many2many:product_fitments"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MainImage returns the first gallery image URL, or empty when none exist.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
