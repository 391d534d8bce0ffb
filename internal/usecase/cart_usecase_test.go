package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

func TestAddToCart_UpsertsInsteadOfSecondRow(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewCartUsecase(cartRepo, productRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Title: "Tee", Price: 49900}, nil)

	//同じ(user, product, size)はUpsertで数量加算する
	cartRepo.On("UpsertByUserProductSize", mock.Anything, int64(10), int64(1), model.SizeM, int64(2)).
		Return(nil)
	cartRepo.On("ListByUserID", mock.Anything, int64(10)).
		Return([]model.CartItem{
			{ID: 3, UserID: 10, ProductID: 1, Size: model.SizeM, Quantity: 5},
		}, nil)

	out, err := uc.AddToCart(context.Background(), 10, AddCartInput{
		ProductID: 1,
		Size:      model.SizeM,
		Quantity:  2,
	})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.Equal(t, int64(5*49900), out.Total)
	cartRepo.AssertExpectations(t)
}

func TestAddToCart_InvalidSize(t *testing.T) {
	uc := NewCartUsecase(new(CartItemRepoMock), new(ProductRepoMock))

	_, err := uc.AddToCart(context.Background(), 10, AddCartInput{
		ProductID: 1,
		Size:      "XS",
		Quantity:  1,
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAddToCart_ZeroQuantity(t *testing.T) {
	uc := NewCartUsecase(new(CartItemRepoMock), new(ProductRepoMock))

	_, err := uc.AddToCart(context.Background(), 10, AddCartInput{
		ProductID: 1,
		Size:      model.SizeM,
		Quantity:  0,
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestUpdateCartItem_OtherUsersRowIs404(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	uc := NewCartUsecase(cartRepo, new(ProductRepoMock))

	cartRepo.On("FindByID", mock.Anything, int64(3)).
		Return(model.CartItem{ID: 3, UserID: 999}, nil)

	_, err := uc.UpdateCartItem(context.Background(), 10, 3, UpdateCartItemInput{Quantity: 2})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCart_SkipsDeletedProducts(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("ListByUserID", mock.Anything, int64(10)).
		Return([]model.CartItem{
			{ID: 1, UserID: 10, ProductID: 1, Size: model.SizeM, Quantity: 1},
			{ID: 2, UserID: 10, ProductID: 2, Size: model.SizeL, Quantity: 1},
		}, nil)

	productRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Title: "Tee", Price: 49900}, nil)
	//2番は削除済み
	productRepo.On("FindByID", mock.Anything, int64(2)).
		Return(model.Product{}, repo.ErrNotFound)

	out, err := uc.GetCart(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(49900), out.Total)
}
