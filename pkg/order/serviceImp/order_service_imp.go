package serviceImp

import (
	"context"
	"iter"

	"github.com/rs/zerolog"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/metrics"
	repo "agrimitra/pkg/order/repository"
	"agrimitra/pkg/order/service"
)

type orderSvc struct {
	r   repo.OrderRepository
	log zerolog.Logger
	m   *metrics.Metrics
}

func NewOrderService(r repo.OrderRepository, log zerolog.Logger, m *metrics.Metrics) service.OrderService {
	return &orderSvc{r: r, log: log.With().Str("module", "order").Logger(), m: m}
}

func (s *orderSvc) PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*entities.Order, error) {
	if in.CropID == 0 {
		return nil, apperr.Validation("crop_id is required")
	}
	if in.BuyerID == 0 {
		return nil, apperr.Validation("buyer_id is required")
	}
	if in.BidPrice != nil && !in.BidPrice.IsPositive() {
		return nil, apperr.Validation("bid_price must be positive")
	}

	o := &entities.Order{CropID: in.CropID, BuyerID: in.BuyerID, BidPrice: in.BidPrice, Status: entities.OrderPending}
	if err := s.r.Create(ctx, o); err != nil {
		return nil, err
	}
	s.m.OrdersPlaced.Inc()
	s.log.Info().Uint("order", o.ID).Uint("crop", o.CropID).Uint("buyer", o.BuyerID).Msg("bid placed")
	return o, nil
}

func (s *orderSvc) GetOrder(ctx context.Context, id uint) (*entities.Order, error) {
	if id == 0 {
		return nil, apperr.Validation("order id is required")
	}
	return s.r.FindByID(ctx, id)
}

func (s *orderSvc) ListOrders(ctx context.Context, f repo.Filter) iter.Seq2[entities.OrderView, error] {
	if f.Status != "" && !f.Status.Valid() {
		return apperr.Seq[entities.OrderView](apperr.Validation("invalid status %q", f.Status))
	}
	return s.r.List(ctx, f)
}

func (s *orderSvc) UpdateOrderStatus(ctx context.Context, id uint, status string) (*entities.Order, error) {
	to := entities.OrderStatus(status)
	if !to.Valid() {
		return nil, apperr.Validation("invalid status %q", status)
	}

	o, from, err := s.r.Transition(ctx, id, to, func(from entities.OrderStatus) error {
		if !service.CanTransition(from, to) {
			return apperr.Conflict("order %d cannot move from %s to %s", id, from, to)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if from != to {
		s.m.OrderTransitions.WithLabelValues(string(from), string(to)).Inc()
		s.log.Info().Uint("order", id).Str("from", string(from)).Str("to", string(to)).Msg("order status changed")
	}
	return o, nil
}
