package entities

import (
	"strings"

	"gorm.io/gorm"
)

// FoldKey is the stored form names are matched on. SQLite's LOWER only
// folds ASCII, so lookups compare against a key folded here instead.
func FoldKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (mp *MarketPrice) BeforeSave(*gorm.DB) error {
	mp.CropKey = FoldKey(mp.CropName)
	mp.RegionKey = FoldKey(mp.Region)
	return nil
}

func (c *Crop) BeforeSave(*gorm.DB) error {
	c.NameKey = FoldKey(c.CropName)
	return nil
}
