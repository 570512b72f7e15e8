package repositoryImp

import (
	"context"
	"iter"
	"strings"

	"gorm.io/gorm"

	"agrimitra/database"
	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *cropRepo) Create(ctx context.Context, c *entities.Crop) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.User{}).Where("id = ?", c.FarmerID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("farmer %d", c.FarmerID)
		}
		return tx.Create(c).Error
	})
	return apperr.FromStore(err)
}

func (r *cropRepo) List(ctx context.Context, f repository.Filter) iter.Seq2[entities.CropView, error] {
	return database.Pages(database.PageSize, func(v entities.CropView) uint { return v.ID }, func(after uint, n int) ([]entities.CropView, error) {
		q := r.db.WithContext(ctx).
			Table("crops AS c").
			Select("c.*, u.name AS farmer_name").
			Joins("JOIN users u ON u.id = c.farmer_id").
			Where("c.id > ?", after)
		if f.FarmerID != 0 {
			q = q.Where("c.farmer_id = ?", f.FarmerID)
		}
		if key := entities.FoldKey(f.Query); key != "" {
			q = q.Where(`c.name_key LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(key)+"%")
		}
		if f.MinPrice != nil {
			q = q.Where("c.price >= ?", f.MinPrice.InexactFloat64())
		}
		if f.MaxPrice != nil {
			q = q.Where("c.price <= ?", f.MaxPrice.InexactFloat64())
		}

		var page []entities.CropView
		err := q.Order("c.id ASC").Limit(n).Scan(&page).Error
		return page, apperr.FromStore(err)
	})
}

func (r *cropRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.Order{}).Where("crop_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("crop %d has %d orders", id, n)
		}
		res := tx.Delete(&entities.Crop{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("crop %d", id)
		}
		return nil
	})
	return apperr.FromStore(err)
}
