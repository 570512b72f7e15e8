package repositoryImp

import (
	"context"
	"iter"

	"gorm.io/gorm"

	"agrimitra/database"
	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/rental/repository"
)

type rentalRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RentalRepository { return &rentalRepo{db} }

func (r *rentalRepo) Book(ctx context.Context, rt *entities.Rental) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.User{}).Where("id = ?", rt.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("user %d", rt.UserID)
		}

		res := tx.Model(&entities.Equipment{}).
			Where("id = ? AND available = ?", rt.EquipmentID, true).
			Update("available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Model(&entities.Equipment{}).Where("id = ?", rt.EquipmentID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return apperr.NotFound("equipment %d", rt.EquipmentID)
			}
			return apperr.Conflict("equipment %d is not available", rt.EquipmentID)
		}

		return tx.Create(rt).Error
	})
	return apperr.FromStore(err)
}

func (r *rentalRepo) List(ctx context.Context, f repository.Filter) iter.Seq2[entities.RentalView, error] {
	return database.Pages(database.PageSize, func(v entities.RentalView) uint { return v.ID }, func(after uint, n int) ([]entities.RentalView, error) {
		q := r.db.WithContext(ctx).
			Table("rentals AS r").
			Select("r.*, e.name AS equipment_name, u.name AS renter_name").
			Joins("JOIN equipment e ON e.id = r.equipment_id").
			Joins("JOIN users u ON u.id = r.user_id").
			Where("r.id > ?", after)
		if f.UserID != 0 {
			q = q.Where("r.user_id = ?", f.UserID)
		}
		if f.EquipmentID != 0 {
			q = q.Where("r.equipment_id = ?", f.EquipmentID)
		}

		var page []entities.RentalView
		err := q.Order("r.id ASC").Limit(n).Scan(&page).Error
		return page, apperr.FromStore(err)
	})
}
