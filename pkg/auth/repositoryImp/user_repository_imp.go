package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/auth/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) Create(ctx context.Context, u *entities.User) error {
	return apperr.FromStore(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var u entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &u, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var u entities.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &u, nil
}
