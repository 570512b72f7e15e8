package repository

import (
	"context"
	"iter"

	"agrimitra/entities"
)

type Filter struct {
	UserID      uint
	EquipmentID uint
}

type RentalRepository interface {
	// Book flips the equipment from available to unavailable and inserts the
	// rental as one unit: both writes happen or neither does.
	Book(ctx context.Context, r *entities.Rental) error
	List(ctx context.Context, f Filter) iter.Seq2[entities.RentalView, error]
}
