package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultPriceUnit = "kg"

// MarketPrice is one append-only observation of a crop's price range in a region.
type MarketPrice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CropName  string          `gorm:"index;not null" json:"crop_name"`
	Region    string          `gorm:"index;not null" json:"region"`
	MinPrice  decimal.Decimal `gorm:"type:numeric;not null" json:"min_price"`
	MaxPrice  decimal.Decimal `gorm:"type:numeric;not null" json:"max_price"`
	AvgPrice  decimal.Decimal `gorm:"type:numeric;not null" json:"avg_price"`
	Unit      string          `gorm:"not null;default:kg" json:"unit"`
	UpdatedAt time.Time       `gorm:"index;autoUpdateTime:false" json:"updated_at"`

	CropKey   string `gorm:"index;not null;default:''" json:"-"`
	RegionKey string `gorm:"index;not null;default:''" json:"-"`
}

func (MarketPrice) TableName() string { return "market_prices" }
