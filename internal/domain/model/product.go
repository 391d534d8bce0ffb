package model

import "time"

// 商品。価格は最小単位（paise）のint64で保存する。
type Product struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string `gorm:"type:varchar(120);not null" json:"title"`
	Slug       string `gorm:"type:varchar(130);not null;uniqueIndex" json:"slug"`
	CategoryID int64  `gorm:"not null;index" json:"category_id"`

	Price       int64  `gorm:"not null" json:"price"`
	Description string `gorm:"type:text" json:"description"`

	//商品画像のURL（アップロード自体は外部ストレージ）
	ImageURL string `gorm:"type:varchar(255)" json:"image_url"`

	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`

	//在庫
	StockQuantity     int64 `gorm:"not null;default:0" json:"stock_quantity"`
	LowStockThreshold int64 `gorm:"not null;default:5" json:"low_stock_threshold"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 在庫があるか
func (p Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// 残りわずかか（0 < stock <= threshold）
func (p Product) IsLowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= p.LowStockThreshold
}
