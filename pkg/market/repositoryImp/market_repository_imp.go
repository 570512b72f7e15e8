package repositoryImp

import (
	"context"
	"iter"

	"gorm.io/gorm"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/market/repository"
)

type marketRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MarketRepository { return &marketRepo{db} }

func (r *marketRepo) SeedIfEmpty(ctx context.Context, rows []entities.MarketPrice) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.MarketPrice{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 || len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		inserted = len(rows)
		return nil
	})
	if err != nil {
		return 0, apperr.FromStore(err)
	}
	return inserted, nil
}

func (r *marketRepo) Append(ctx context.Context, rows []entities.MarketPrice) error {
	if len(rows) == 0 {
		return nil
	}
	return apperr.FromStore(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	}))
}

func (r *marketRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entities.MarketPrice{}).Count(&n).Error; err != nil {
		return 0, apperr.FromStore(err)
	}
	return n, nil
}

// Query reads the whole result before yielding; Limit bounds it.
func (r *marketRepo) Query(ctx context.Context, q repository.Query) iter.Seq2[entities.MarketPrice, error] {
	return func(yield func(entities.MarketPrice, error) bool) {
		tx := r.db.WithContext(ctx).Model(&entities.MarketPrice{})
		if key := entities.FoldKey(q.CropName); key != "" {
			tx = tx.Where("crop_key = ?", key)
		}
		if key := entities.FoldKey(q.Region); key != "" {
			tx = tx.Where("region_key = ?", key)
		}
		if q.Limit > 0 {
			tx = tx.Limit(q.Limit)
		}

		var rows []entities.MarketPrice
		if err := tx.Order("updated_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
			yield(entities.MarketPrice{}, apperr.FromStore(err))
			return
		}
		for _, mp := range rows {
			if !yield(mp, nil) {
				return
			}
		}
	}
}
