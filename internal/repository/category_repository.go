package repository

import (
	"app/internal/domain/model"
	"context"
)

type CategoryRepository interface {
	//名前順で全件
	ListAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
}
