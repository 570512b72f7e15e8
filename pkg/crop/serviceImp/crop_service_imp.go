package serviceImp

import (
	"context"
	"iter"
	"strings"

	"github.com/rs/zerolog"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	repo "agrimitra/pkg/crop/repository"
	"agrimitra/pkg/crop/service"
)

type cropSvc struct {
	r   repo.CropRepository
	log zerolog.Logger
}

func NewCropService(r repo.CropRepository, log zerolog.Logger) service.CropService {
	return &cropSvc{r: r, log: log.With().Str("module", "crop").Logger()}
}

func (s *cropSvc) CreateCrop(ctx context.Context, in service.CreateCropInput) (*entities.Crop, error) {
	name := strings.TrimSpace(in.CropName)
	switch {
	case in.FarmerID == 0:
		return nil, apperr.Validation("farmer_id is required")
	case name == "":
		return nil, apperr.Validation("crop_name is required")
	case in.Quantity == nil || !in.Quantity.IsPositive():
		return nil, apperr.Validation("quantity must be positive")
	case in.Price == nil || !in.Price.IsPositive():
		return nil, apperr.Validation("price must be positive")
	}
	c := &entities.Crop{
		FarmerID: in.FarmerID,
		CropName: name,
		Quantity: *in.Quantity,
		Price:    *in.Price,
	}
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != "" {
		c.ImageURL = in.ImageURL
	}
	if err := s.r.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Uint("crop_id", c.ID).Uint("farmer_id", c.FarmerID).Str("crop", c.CropName).Msg("crop listed")
	return c, nil
}

func (s *cropSvc) ListCrops(ctx context.Context, f repo.Filter) iter.Seq2[entities.CropView, error] {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return apperr.Seq[entities.CropView](apperr.Validation("min_price exceeds max_price"))
	}
	f.Query = strings.TrimSpace(f.Query)
	return s.r.List(ctx, f)
}

func (s *cropSvc) DeleteCrop(ctx context.Context, id uint) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("crop_id", id).Msg("crop deleted")
	return nil
}
