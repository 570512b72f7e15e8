package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Equipment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	FarmerID  uint            `gorm:"index;not null" json:"farmer_id"`
	Name      string          `gorm:"not null" json:"name"`
	RentPrice decimal.Decimal `gorm:"type:numeric;not null" json:"rent_price"`
	Available bool            `gorm:"index;not null;default:true" json:"available"`
	CreatedAt time.Time       `json:"created_at"`

	Farmer *User `gorm:"foreignKey:FarmerID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Equipment) TableName() string { return "equipment" }

type EquipmentView struct {
	Equipment
	FarmerName string `json:"farmer_name"`
}
