package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderAccepted OrderStatus = "accepted"
	OrderRejected OrderStatus = "rejected"
	OrderBought   OrderStatus = "bought"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderAccepted, OrderRejected, OrderBought}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition out of s (other than to s itself) exists.
func (s OrderStatus) Terminal() bool {
	return s == OrderAccepted || s == OrderRejected || s == OrderBought
}

// Order is a buyer's bid against a crop listing. A nil BidPrice means the
// buyer accepts the listed price.
type Order struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CropID    uint             `gorm:"index;not null" json:"crop_id"`
	BuyerID   uint             `gorm:"index;not null" json:"buyer_id"`
	BidPrice  *decimal.Decimal `gorm:"type:numeric" json:"bid_price"`
	Status    OrderStatus      `gorm:"index;not null;default:pending" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Crop  *Crop `gorm:"foreignKey:CropID;constraint:OnDelete:RESTRICT" json:"-"`
	Buyer *User `gorm:"foreignKey:BuyerID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Order) TableName() string { return "orders" }

type OrderView struct {
	Order
	CropName  string `json:"crop_name"`
	FarmerID  uint   `json:"farmer_id"`
	BuyerName string `json:"buyer_name"`
}
