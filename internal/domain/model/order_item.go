package model

import "time"

type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// サイズが選択肢に含まれるか
func IsValidSize(s Size) bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL:
		return true
	default:
		return false
	}
}

// 注文明細。priceは注文時点の商品価格のスナップショット。
// 商品価格が後で変わっても明細は変わらない。
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"order_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Size      Size      `gorm:"type:varchar(3);not null" json:"size"`
	Quantity  int64     `gorm:"not null;default:1" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
