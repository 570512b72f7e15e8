package service

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"

	"agrimitra/entities"
	"agrimitra/pkg/crop/repository"
)

type CreateCropInput struct {
	FarmerID uint
	CropName string
	Quantity *decimal.Decimal
	Price    *decimal.Decimal
	ImageURL *string
}

type CropService interface {
	CreateCrop(ctx context.Context, in CreateCropInput) (*entities.Crop, error)
	ListCrops(ctx context.Context, f repository.Filter) iter.Seq2[entities.CropView, error]
	DeleteCrop(ctx context.Context, id uint) error
}
