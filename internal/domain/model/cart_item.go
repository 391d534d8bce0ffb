package model

import "time"

// カート明細
// (user, product, size) はユニーク。同じ組み合わせは数量加算になる。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_cart_user_product_size" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:uq_cart_user_product_size;index" json:"product_id"`
	Size      Size      `gorm:"type:varchar(3);not null;uniqueIndex:uq_cart_user_product_size;default:'M'" json:"size"`
	Quantity  int64     `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime;index" json:"added_at"`
}
