package service

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"

	"agrimitra/entities"
	"agrimitra/pkg/order/repository"
)

type PlaceOrderInput struct {
	CropID  uint
	BuyerID uint
	// nil accepts the listed price
	BidPrice *decimal.Decimal
}

type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*entities.Order, error)
	GetOrder(ctx context.Context, id uint) (*entities.Order, error)
	ListOrders(ctx context.Context, f repository.Filter) iter.Seq2[entities.OrderView, error]
	UpdateOrderStatus(ctx context.Context, id uint, status string) (*entities.Order, error)
}

var transitions = map[entities.OrderStatus][]entities.OrderStatus{
	entities.OrderPending: {entities.OrderAccepted, entities.OrderRejected, entities.OrderBought},
}

// CanTransition reports whether an order may move from one status to
// another. Staying in the same status is always allowed.
func CanTransition(from, to entities.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
