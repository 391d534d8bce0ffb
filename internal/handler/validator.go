package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// リクエストの形（必須・桁・範囲）はvalidatorタグで弾く。
// ドメイン判断（サイズの妥当性・在庫など）はusecase側に残る。
type requestValidator struct {
	v *validator.Validate
}

// NewValidatorはechoの e.Validator に差し込む実装を返す。
func NewValidator() echo.Validator {
	return &requestValidator{v: validator.New()}
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
