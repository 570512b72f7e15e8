package serviceImp

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	repo "agrimitra/pkg/market/repository"
	"agrimitra/pkg/market/service"
	"agrimitra/pkg/metrics"
)

type baselineRow struct {
	crop, region  string
	min, max, avg int64
}

// Baseline observations written by Seed into an empty ledger, prices per kg.
var baseline = []baselineRow{
	{"Wheat", "Punjab", 18, 24, 21},
	{"Rice", "Haryana", 30, 38, 34},
	{"Tomato", "Maharashtra", 12, 20, 16},
	{"Onion", "Maharashtra", 15, 25, 20},
	{"Potato", "Uttar Pradesh", 10, 16, 13},
	{"Cotton", "Gujarat", 60, 72, 66},
}

// BaselineSize is the number of observations Seed writes.
var BaselineSize = len(baseline)

type Option func(*ledgerSvc)

// WithClock replaces time.Now as the source of observation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ledgerSvc) { s.now = now }
}

type ledgerSvc struct {
	r   repo.MarketRepository
	log zerolog.Logger
	m   *metrics.Metrics
	now func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewLedgerService(r repo.MarketRepository, log zerolog.Logger, m *metrics.Metrics, opts ...Option) service.LedgerService {
	s := &ledgerSvc{r: r, log: log.With().Str("module", "market").Logger(), m: m, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// stamp returns the current UTC time, nudged forward so that timestamps
// handed out by this ledger strictly increase.
func (s *ledgerSvc) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *ledgerSvc) Seed(ctx context.Context) (int, error) {
	at := s.stamp()
	rows := make([]entities.MarketPrice, 0, len(baseline))
	for _, b := range baseline {
		rows = append(rows, entities.MarketPrice{
			CropName:  b.crop,
			Region:    b.region,
			MinPrice:  decimal.NewFromInt(b.min),
			MaxPrice:  decimal.NewFromInt(b.max),
			AvgPrice:  decimal.NewFromInt(b.avg),
			Unit:      entities.DefaultPriceUnit,
			UpdatedAt: at,
		})
	}
	n, err := s.r.SeedIfEmpty(ctx, rows)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info().Int("rows", n).Msg("seeded market prices")
	}
	return n, nil
}

func (s *ledgerSvc) RecordObservation(ctx context.Context, in service.ObservationInput) (*entities.MarketPrice, error) {
	mp, err := build(in)
	if err != nil {
		return nil, err
	}
	mp.UpdatedAt = s.stamp()

	rows := []entities.MarketPrice{mp}
	if err := s.r.Append(ctx, rows); err != nil {
		return nil, err
	}
	s.m.ObservationsRecorded.Inc()
	s.log.Info().Uint("id", rows[0].ID).Str("crop", mp.CropName).Str("region", mp.Region).
		Str("avg", mp.AvgPrice.String()).Msg("price observation recorded")
	return &rows[0], nil
}

func (s *ledgerSvc) Import(ctx context.Context, in []service.ObservationInput) ([]entities.MarketPrice, error) {
	rows := make([]entities.MarketPrice, 0, len(in))
	for i, obs := range in {
		mp, err := build(obs)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, mp)
	}
	for i := range rows {
		rows[i].UpdatedAt = s.stamp()
	}
	if err := s.r.Append(ctx, rows); err != nil {
		return nil, err
	}
	s.m.ObservationsRecorded.Add(float64(len(rows)))
	s.log.Info().Int("rows", len(rows)).Msg("price observations imported")
	return rows, nil
}

func (s *ledgerSvc) QueryObservations(ctx context.Context, q repo.Query) iter.Seq2[entities.MarketPrice, error] {
	if q.Limit <= 0 {
		q.Limit = service.DefaultLimit
	}
	if q.Limit > service.MaxLimit {
		q.Limit = service.MaxLimit
	}
	q.CropName = strings.TrimSpace(q.CropName)
	q.Region = strings.TrimSpace(q.Region)
	return s.r.Query(ctx, q)
}

func build(in service.ObservationInput) (entities.MarketPrice, error) {
	var mp entities.MarketPrice
	crop, region := strings.TrimSpace(in.CropName), strings.TrimSpace(in.Region)
	switch {
	case crop == "":
		return mp, apperr.Validation("crop_name is required")
	case region == "":
		return mp, apperr.Validation("region is required")
	case in.MinPrice == nil:
		return mp, apperr.Validation("min_price is required")
	case in.MaxPrice == nil:
		return mp, apperr.Validation("max_price is required")
	case in.AvgPrice == nil:
		return mp, apperr.Validation("avg_price is required")
	}
	lo, hi, avg := *in.MinPrice, *in.MaxPrice, *in.AvgPrice
	if lo.IsNegative() || hi.IsNegative() || avg.IsNegative() {
		return mp, apperr.Validation("prices must not be negative")
	}
	if lo.GreaterThan(avg) || avg.GreaterThan(hi) {
		return mp, apperr.Validation("prices must satisfy min_price <= avg_price <= max_price")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entities.DefaultPriceUnit
	}
	return entities.MarketPrice{
		CropName: crop,
		Region:   region,
		MinPrice: lo,
		MaxPrice: hi,
		AvgPrice: avg,
		Unit:     unit,
	}, nil
}
