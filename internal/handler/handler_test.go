package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"app/internal/middleware"
	"app/internal/usecase"
)

func newEchoContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newJSONContext(target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteError_MapsHTTPError(t *testing.T) {
	c, rec := newEchoContext("/")

	err := writeError(c, usecase.NewHTTPError(http.StatusNotFound, "order not found"))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"order not found"}`, rec.Body.String())
}

func TestWriteError_UnknownErrorIs500WithoutDetails(t *testing.T) {
	c, rec := newEchoContext("/")

	err := writeError(c, errors.New("pq: connection refused"))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// 内部事情をレスポンスに漏らさない
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestGetUserIDFromContext(t *testing.T) {
	c, _ := newEchoContext("/")

	_, ok := getUserIDFromContext(c)
	assert.False(t, ok)

	c.Set(middleware.CtxUserIDKey, int64(42))
	id, ok := getUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestIsStaffFromContext(t *testing.T) {
	c, _ := newEchoContext("/")
	assert.False(t, isStaffFromContext(c))

	c.Set(middleware.CtxUserRoleKey, "USER")
	assert.False(t, isStaffFromContext(c))

	c.Set(middleware.CtxUserRoleKey, "ADMIN")
	assert.True(t, isStaffFromContext(c))
}

// usecaseをnilで渡し、バリデーションがusecase到達前に弾くことを確かめる

func TestContactSubmit_BadShapeRejectedByValidator(t *testing.T) {
	c, rec := newJSONContext("/contact", `{"name":"","email":"not-an-email","message":""}`)
	h := NewContactHandler(nil)

	err := h.submit(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAdd_ZeroQuantityRejectedByValidator(t *testing.T) {
	c, rec := newJSONContext("/cart", `{"product_id":10,"size":"M","quantity":0}`)
	c.Set(middleware.CtxUserIDKey, int64(1))
	h := NewCartHandler(nil)

	err := h.add(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ShortPasswordRejectedByValidator(t *testing.T) {
	c, rec := newJSONContext("/register", `{"username":"asha","email":"asha@example.com","password":"short"}`)
	h := &AuthHandler{}

	err := h.register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryInt(t *testing.T) {
	c, _ := newEchoContext("/products?page=3")
	page, err := queryInt(c, "page", 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, page)

	// 未指定はデフォルト
	limit, err := queryInt(c, "limit", 20)
	assert.NoError(t, err)
	assert.Equal(t, 20, limit)

	c, _ = newEchoContext("/products?page=abc")
	_, err = queryInt(c, "page", 1)
	assert.Error(t, err)
}
