package repositoryImp

import (
	"context"
	"iter"

	"gorm.io/gorm"

	"agrimitra/database"
	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/order/repository"
)

type orderRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.OrderRepository { return &orderRepo{db} }

func (r *orderRepo) Create(ctx context.Context, o *entities.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.Crop{}).Where("id = ?", o.CropID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("crop %d", o.CropID)
		}
		if err := tx.Model(&entities.User{}).Where("id = ?", o.BuyerID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("buyer %d", o.BuyerID)
		}
		return tx.Create(o).Error
	})
	return apperr.FromStore(err)
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*entities.Order, error) {
	var o entities.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, f repository.Filter) iter.Seq2[entities.OrderView, error] {
	return database.Pages(database.PageSize, func(v entities.OrderView) uint { return v.ID }, func(after uint, n int) ([]entities.OrderView, error) {
		q := r.db.WithContext(ctx).
			Table("orders AS o").
			Select("o.*, c.crop_name, c.farmer_id, u.name AS buyer_name").
			Joins("JOIN crops c ON c.id = o.crop_id").
			Joins("JOIN users u ON u.id = o.buyer_id").
			Where("o.id > ?", after)
		if f.BuyerID != 0 {
			q = q.Where("o.buyer_id = ?", f.BuyerID)
		}
		if f.FarmerID != 0 {
			q = q.Where("c.farmer_id = ?", f.FarmerID)
		}
		if f.Status != "" {
			q = q.Where("o.status = ?", f.Status)
		}

		var page []entities.OrderView
		err := q.Order("o.id ASC").Limit(n).Scan(&page).Error
		return page, apperr.FromStore(err)
	})
}

func (r *orderRepo) Transition(ctx context.Context, id uint, to entities.OrderStatus, allow func(from entities.OrderStatus) error) (*entities.Order, entities.OrderStatus, error) {
	var (
		o    entities.Order
		from entities.OrderStatus
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&o, id).Error; err != nil {
			return err
		}
		from = o.Status
		if err := allow(from); err != nil {
			return err
		}
		if from == to {
			return nil
		}
		// compare-and-swap on the status we just read
		res := tx.Model(&entities.Order{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("order %d changed concurrently", id)
		}
		return tx.First(&o, id).Error
	})
	if err != nil {
		return nil, from, apperr.FromStore(err)
	}
	return &o, from, nil
}
