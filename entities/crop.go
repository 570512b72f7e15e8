package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Crop struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	FarmerID uint            `gorm:"index;not null" json:"farmer_id"`
	CropName string          `gorm:"not null" json:"crop_name"`
	NameKey  string          `gorm:"index;not null;default:''" json:"-"`
	Quantity decimal.Decimal `gorm:"type:numeric;not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	// ImageURL is an opaque reference from file storage, stored verbatim.
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`

	Farmer *User `gorm:"foreignKey:FarmerID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Crop) TableName() string { return "crops" }

type CropView struct {
	Crop
	FarmerName string `json:"farmer_name"`
}
