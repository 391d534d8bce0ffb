package repository

import (
	"context"

	"app/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error)
	FindByID(ctx context.Context, id int64) (model.Wishlist, error)
	//同じ(user, product)が既にあればErrConflict
	Create(ctx context.Context, w model.Wishlist) (model.Wishlist, error)
	DeleteByID(ctx context.Context, id int64) error
}
