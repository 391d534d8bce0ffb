package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// 署名が一致しない
var ErrSignatureMismatch = errors.New("signature verification failed")

// ゲートウェイからの支払い完了通知
type ConfirmationPayload struct {
	OrderRef   string
	PaymentRef string
	Signature  string
}

// 支払い署名の検証の約束。
// ゲートウェイが共有シークレットで署名したペイロードの真正性を確認する。
type SignatureVerifier interface {
	Verify(p ConfirmationPayload) error
}

// HMAC-SHA256で検証する実装。
// 期待値は HMAC(secret, order_ref + "|" + payment_ref) の16進表現。
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(p ConfirmationPayload) error {
	if p.OrderRef == "" || p.PaymentRef == "" || p.Signature == "" {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(p.OrderRef + "|" + p.PaymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))

	//比較は一定時間で行う
	if !hmac.Equal([]byte(expected), []byte(p.Signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
