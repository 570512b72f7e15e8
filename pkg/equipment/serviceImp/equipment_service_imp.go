package serviceImp

import (
	"context"
	"iter"
	"strings"

	"github.com/rs/zerolog"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	repo "agrimitra/pkg/equipment/repository"
	"agrimitra/pkg/equipment/service"
)

type equipmentSvc struct {
	r   repo.EquipmentRepository
	log zerolog.Logger
}

func NewEquipmentService(r repo.EquipmentRepository, log zerolog.Logger) service.EquipmentService {
	return &equipmentSvc{r: r, log: log.With().Str("module", "equipment").Logger()}
}

func (s *equipmentSvc) CreateEquipment(ctx context.Context, in service.CreateEquipmentInput) (*entities.Equipment, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case in.FarmerID == 0:
		return nil, apperr.Validation("farmer_id is required")
	case name == "":
		return nil, apperr.Validation("name is required")
	case in.RentPrice == nil || !in.RentPrice.IsPositive():
		return nil, apperr.Validation("rent_price must be positive")
	}
	e := &entities.Equipment{FarmerID: in.FarmerID, Name: name, RentPrice: *in.RentPrice, Available: true}
	if err := s.r.Create(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info().Uint("equipment_id", e.ID).Uint("farmer_id", e.FarmerID).Str("name", e.Name).Msg("equipment listed")
	return e, nil
}

func (s *equipmentSvc) ListEquipment(ctx context.Context, f repo.Filter) iter.Seq2[entities.EquipmentView, error] {
	return s.r.List(ctx, f)
}

func (s *equipmentSvc) DeleteEquipment(ctx context.Context, id uint) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("equipment_id", id).Msg("equipment deleted")
	return nil
}
