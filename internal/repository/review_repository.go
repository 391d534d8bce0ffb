package repository

import (
	"context"

	"app/internal/domain/model"
)

type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	ListAll(ctx context.Context, page int, limit int) ([]model.Review, int64, error)
	FindByID(ctx context.Context, reviewID int64) (model.Review, error)

	//同じ(product, user)が既にあればErrConflict
	Create(ctx context.Context, r model.Review) (model.Review, error)
	Update(ctx context.Context, r model.Review) error
	DeleteByID(ctx context.Context, reviewID int64) error

	//件数と平均（丸めは呼び出し側）
	StatsByProductID(ctx context.Context, productID int64) (ReviewStats, error)
}
