package service

import (
	"context"
	"iter"

	"agrimitra/entities"
	"agrimitra/pkg/rental/repository"
)

// CreateRentalInput carries the booking request. Dates are YYYY-MM-DD.
type CreateRentalInput struct {
	EquipmentID uint
	UserID      uint
	StartDate   string
	EndDate     string
}

type RentalService interface {
	CreateRental(ctx context.Context, in CreateRentalInput) (*entities.Rental, error)
	ListRentals(ctx context.Context, f repository.Filter) iter.Seq2[entities.RentalView, error]
}
