package model

import "time"

// お気に入り。(user, product) はユニーク。
type Wishlist struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_wishlist_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:uq_wishlist_user_product;index" json:"product_id"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime;index" json:"added_at"`
}
