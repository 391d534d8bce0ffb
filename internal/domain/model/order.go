package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// 注文。total_amountは作成時に一度だけ計算し、以後は再計算しない。
// 配送先は住所マスタを持たず、注文時の文字列をそのまま保存する。
type Order struct {
	ID     int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64       `gorm:"not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`

	TotalAmount int64 `gorm:"not null;default:0" json:"total_amount"`

	//配送先
	ShippingName    string `gorm:"type:varchar(100)" json:"shipping_name"`
	ShippingPhone   string `gorm:"type:varchar(20)" json:"shipping_phone"`
	ShippingAddress string `gorm:"type:text" json:"shipping_address"`
	ShippingCity    string `gorm:"type:varchar(50)" json:"shipping_city"`
	ShippingState   string `gorm:"type:varchar(50)" json:"shipping_state"`
	ShippingPincode string `gorm:"type:varchar(10)" json:"shipping_pincode"`

	//支払い
	PaymentMethod string `gorm:"type:varchar(20);not null;default:'UPI'" json:"payment_method"`

	//payment_verifiedはstatusとは別経路で更新される
	PaymentVerified bool `gorm:"not null;default:false" json:"payment_verified"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
