package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/enums"
)

// Order is the durable record written when checkout is submitted. Monetary
// fields are the values shown to the customer at submission time.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	SessionID     uuid.UUID           `gorm:"column:session_id;type:uuid;not null;index"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerEmail string              `gorm:"column:customer_email;not null"`
	AddressLine   string              `gorm:"column:address_line;not null"`
	PostalCode    string              `gorm:"column:postal_code;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:pending"`

	Subtotal          decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	ShippingFee       decimal.Decimal `gorm:"column:shipping_fee;type:numeric(10,2);not null"`
	Discount          decimal.Decimal `gorm:"column:discount;type:numeric(10,2);not null"`
	IncentiveDiscount decimal.Decimal `gorm:"column:incentive_discount;type:numeric(10,2);not null"`
	Total             decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	CouponCode        *string         `gorm:"column:coupon_code"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
