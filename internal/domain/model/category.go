package model

// 商品カテゴリ
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
	Slug string `gorm:"type:varchar(60);not null;uniqueIndex" json:"slug"`
}
