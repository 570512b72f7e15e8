package repositoryImp

import (
	"context"
	"iter"

	"gorm.io/gorm"

	"agrimitra/database"
	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/equipment/repository"
)

type equipmentRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.EquipmentRepository { return &equipmentRepo{db} }

func (r *equipmentRepo) Create(ctx context.Context, e *entities.Equipment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.User{}).Where("id = ?", e.FarmerID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("farmer %d", e.FarmerID)
		}
		return tx.Create(e).Error
	})
	return apperr.FromStore(err)
}

func (r *equipmentRepo) List(ctx context.Context, f repository.Filter) iter.Seq2[entities.EquipmentView, error] {
	return database.Pages(database.PageSize, func(v entities.EquipmentView) uint { return v.ID }, func(after uint, n int) ([]entities.EquipmentView, error) {
		q := r.db.WithContext(ctx).
			Table("equipment AS e").
			Select("e.*, u.name AS farmer_name").
			Joins("JOIN users u ON u.id = e.farmer_id").
			Where("e.id > ?", after)
		if f.FarmerID != 0 {
			q = q.Where("e.farmer_id = ?", f.FarmerID)
		}
		if f.Available != nil {
			q = q.Where("e.available = ?", *f.Available)
		}

		var page []entities.EquipmentView
		err := q.Order("e.id ASC").Limit(n).Scan(&page).Error
		return page, apperr.FromStore(err)
	})
}

func (r *equipmentRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.Rental{}).Where("equipment_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("equipment %d has %d rentals", id, n)
		}
		res := tx.Delete(&entities.Equipment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("equipment %d", id)
		}
		return nil
	})
	return apperr.FromStore(err)
}
