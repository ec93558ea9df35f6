package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order.TotalAmount is a snapshot of the referenced products' prices at
// creation time. It is never recomputed when prices later change.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index;column:customer_id" json:"customer_id"`
	Customer    *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Products    []*Product      `gorm:"many2many:order_products;" json:"products,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;column:total_amount" json:"total_amount"`
	OrderDate   time.Time       `gorm:"not null;column:order_date" json:"order_date"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string {
	return "order"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	return nil
}
