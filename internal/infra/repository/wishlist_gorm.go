package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

func (r *WishlistGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error) {
	var items []model.Wishlist
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at desc").
		Find(&items).Error; err != nil {
		return []model.Wishlist{}, err
	}
	return items, nil
}

func (r *WishlistGormRepository) FindByID(ctx context.Context, id int64) (model.Wishlist, error) {
	var w model.Wishlist
	err := r.db.WithContext(ctx).First(&w, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Wishlist{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Wishlist{}, err
	}
	return w, nil
}

// 同じ(user, product)の二重登録はErrConflict
func (r *WishlistGormRepository) Create(ctx context.Context, w model.Wishlist) (model.Wishlist, error) {
	if err := r.db.WithContext(ctx).Create(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Wishlist{}, repo.ErrConflict
		}
		return model.Wishlist{}, err
	}
	return w, nil
}

func (r *WishlistGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Wishlist{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
