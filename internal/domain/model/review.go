package model

import "time"

// 商品レビュー。1商品につき1ユーザー1件。ratingは1〜5。
type Review struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID        int64     `gorm:"not null;uniqueIndex:uq_review_product_user;index" json:"product_id"`
	UserID           int64     `gorm:"not null;uniqueIndex:uq_review_product_user" json:"user_id"`
	Rating           int       `gorm:"not null" json:"rating"`
	Comment          string    `gorm:"type:text" json:"comment"`
	VerifiedPurchase bool      `gorm:"not null;default:false" json:"verified_purchase"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
