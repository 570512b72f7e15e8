package service

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"

	"agrimitra/entities"
	"agrimitra/pkg/market/repository"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ObservationInput is one price observation to append. Nil prices are
// treated as missing.
type ObservationInput struct {
	CropName string           `json:"crop_name"`
	Region   string           `json:"region"`
	MinPrice *decimal.Decimal `json:"min_price"`
	MaxPrice *decimal.Decimal `json:"max_price"`
	AvgPrice *decimal.Decimal `json:"avg_price"`
	Unit     string           `json:"unit"`
}

type LedgerService interface {
	// Seed inserts the baseline observations when the ledger is empty and
	// returns the number of rows inserted.
	Seed(ctx context.Context) (int, error)
	RecordObservation(ctx context.Context, in ObservationInput) (*entities.MarketPrice, error)
	// Import validates and appends a batch; nothing is written if any row is invalid.
	Import(ctx context.Context, in []ObservationInput) ([]entities.MarketPrice, error)
	QueryObservations(ctx context.Context, q repository.Query) iter.Seq2[entities.MarketPrice, error]
}
