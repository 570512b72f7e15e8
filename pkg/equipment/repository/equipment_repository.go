package repository

import (
	"context"
	"iter"

	"agrimitra/entities"
)

// Filter narrows an equipment listing; nil or zero values match everything.
type Filter struct {
	FarmerID  uint
	Available *bool
}

type EquipmentRepository interface {
	// Create fails with NotFound when the owning farmer does not exist.
	Create(ctx context.Context, e *entities.Equipment) error
	List(ctx context.Context, f Filter) iter.Seq2[entities.EquipmentView, error]
	// Delete refuses equipment that rentals still reference.
	Delete(ctx context.Context, id uint) error
}
