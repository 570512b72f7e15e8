package repository

import (
	"context"
	"iter"

	"agrimitra/entities"
)

// Filter narrows ListOrders. Zero values mean "any".
type Filter struct {
	BuyerID  uint
	FarmerID uint
	Status   entities.OrderStatus
}

type OrderRepository interface {
	// Create inserts o after checking that its crop and buyer exist.
	Create(ctx context.Context, o *entities.Order) error
	FindByID(ctx context.Context, id uint) (*entities.Order, error)
	// List reads a page at a time in id order; the loop body may write to
	// the store between rows.
	List(ctx context.Context, f Filter) iter.Seq2[entities.OrderView, error]
	// Transition moves order id to status to. allow is called with the
	// current status inside the same transaction and may veto the change.
	// The previous status is returned alongside the updated order.
	Transition(ctx context.Context, id uint, to entities.OrderStatus, allow func(from entities.OrderStatus) error) (*entities.Order, entities.OrderStatus, error)
}
