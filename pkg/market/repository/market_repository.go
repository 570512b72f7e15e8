package repository

import (
	"context"
	"iter"

	"agrimitra/entities"
)

// Query selects observations. Empty names match everything; matching is
// case-insensitive and exact.
type Query struct {
	CropName string
	Region   string
	Limit    int
}

type MarketRepository interface {
	// SeedIfEmpty inserts rows only when the table has no rows at all and
	// reports how many were inserted.
	SeedIfEmpty(ctx context.Context, rows []entities.MarketPrice) (int, error)
	// Append inserts rows in one transaction.
	Append(ctx context.Context, rows []entities.MarketPrice) error
	Count(ctx context.Context) (int64, error)
	// Query yields matches newest first.
	Query(ctx context.Context, q Query) iter.Seq2[entities.MarketPrice, error]
}
