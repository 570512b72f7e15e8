package serviceImp

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/metrics"
	repo "agrimitra/pkg/rental/repository"
	"agrimitra/pkg/rental/service"
)

type rentalSvc struct {
	r   repo.RentalRepository
	log zerolog.Logger
	m   *metrics.Metrics
}

func NewRentalService(r repo.RentalRepository, log zerolog.Logger, m *metrics.Metrics) service.RentalService {
	return &rentalSvc{r: r, log: log.With().Str("module", "rental").Logger(), m: m}
}

func (s *rentalSvc) CreateRental(ctx context.Context, in service.CreateRentalInput) (*entities.Rental, error) {
	start, end, err := validate(in)
	if err != nil {
		return nil, err
	}

	rt := &entities.Rental{
		EquipmentID: in.EquipmentID,
		UserID:      in.UserID,
		StartDate:   start.Format(entities.DateLayout),
		EndDate:     end.Format(entities.DateLayout),
	}
	if err := s.r.Book(ctx, rt); err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			s.m.RentalsRefused.WithLabelValues("unavailable").Inc()
		case errors.Is(err, apperr.ErrNotFound):
			s.m.RentalsRefused.WithLabelValues("not_found").Inc()
		default:
			s.log.Error().Err(err).Uint("equipment", in.EquipmentID).Msg("booking failed")
		}
		return nil, err
	}

	s.m.RentalsCreated.Inc()
	s.log.Info().Uint("rental", rt.ID).Uint("equipment", rt.EquipmentID).Uint("user", rt.UserID).
		Str("from", rt.StartDate).Str("to", rt.EndDate).Msg("equipment booked")
	return rt, nil
}

func (s *rentalSvc) ListRentals(ctx context.Context, f repo.Filter) iter.Seq2[entities.RentalView, error] {
	return s.r.List(ctx, f)
}

func validate(in service.CreateRentalInput) (time.Time, time.Time, error) {
	var zero time.Time
	switch {
	case in.EquipmentID == 0:
		return zero, zero, apperr.Validation("equipment_id is required")
	case in.UserID == 0:
		return zero, zero, apperr.Validation("user_id is required")
	case strings.TrimSpace(in.StartDate) == "":
		return zero, zero, apperr.Validation("start_date is required")
	case strings.TrimSpace(in.EndDate) == "":
		return zero, zero, apperr.Validation("end_date is required")
	}
	start, err := time.Parse(entities.DateLayout, strings.TrimSpace(in.StartDate))
	if err != nil {
		return zero, zero, apperr.Validation("start_date %q is not YYYY-MM-DD", in.StartDate)
	}
	end, err := time.Parse(entities.DateLayout, strings.TrimSpace(in.EndDate))
	if err != nil {
		return zero, zero, apperr.Validation("end_date %q is not YYYY-MM-DD", in.EndDate)
	}
	if end.Before(start) {
		return zero, zero, apperr.Validation("end_date precedes start_date")
	}
	return start, end, nil
}
