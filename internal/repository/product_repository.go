package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// ユニーク制約違反（カート・レビュー・お気に入りの重複など）
var ErrConflict = errors.New("conflict")

// 一覧検索
type ProductListQuery struct {
	Page  int
	Limit int

	//title / description / カテゴリ名の部分一致（大文字小文字は無視）
	Search string

	//カテゴリのslugで絞り込み
	CategorySlug string

	//在庫ありのみ
	InStockOnly bool
}

// レビュー集計（平均は丸め前の生の値）
type ReviewStats struct {
	Count   int64
	Average float64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}

// 在庫の永続化と調整履歴の約束。
type InventoryRepository interface {
	SetStock(ctx context.Context, productID int64, newStock int64) error
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
	CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error
}
