package repository

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"

	"agrimitra/entities"
)

// Filter narrows a crop listing; zero values match everything. Query is a
// case-insensitive substring of the crop name.
type Filter struct {
	FarmerID uint
	Query    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type CropRepository interface {
	// Create fails with NotFound when the farmer does not exist.
	Create(ctx context.Context, c *entities.Crop) error
	List(ctx context.Context, f Filter) iter.Seq2[entities.CropView, error]
	// Delete refuses crops that orders still reference.
	Delete(ctx context.Context, id uint) error
}
