package model

// ユーザープロフィール。1ユーザーにつき1件。
// verification_tokenはメール確認用。確認成功で空文字にクリアする。
type Profile struct {
	ID                int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	Phone             string `gorm:"type:varchar(20)" json:"phone"`
	Address           string `gorm:"type:text" json:"address"`
	IsVerified        bool   `gorm:"not null;default:false" json:"is_verified"`
	VerificationToken string `gorm:"type:varchar(100);index" json:"-"`
}
