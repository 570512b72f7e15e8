package service

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"

	"agrimitra/entities"
	"agrimitra/pkg/equipment/repository"
)

type CreateEquipmentInput struct {
	FarmerID  uint
	Name      string
	RentPrice *decimal.Decimal
}

type EquipmentService interface {
	// CreateEquipment lists new equipment as available.
	CreateEquipment(ctx context.Context, in CreateEquipmentInput) (*entities.Equipment, error)
	ListEquipment(ctx context.Context, f repository.Filter) iter.Seq2[entities.EquipmentView, error]
	DeleteEquipment(ctx context.Context, id uint) error
}
