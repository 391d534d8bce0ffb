package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

type WishlistItemOutput struct {
	ID      int64         `json:"id"`
	Product model.Product `json:"product"`
	AddedAt time.Time     `json:"added_at"`
}

func (u *WishlistUsecase) ListWishlist(ctx context.Context, userID int64) ([]WishlistItemOutput, error) {
	if userID <= 0 {
		return []WishlistItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []WishlistItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outputs := make([]WishlistItemOutput, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			//商品が削除済みの行はスキップ
			continue
		}
		if err != nil {
			return []WishlistItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outputs = append(outputs, WishlistItemOutput{
			ID:      it.ID,
			Product: p,
			AddedAt: it.AddedAt,
		})
	}
	return outputs, nil
}

// 追加。既に入っていれば409。
func (u *WishlistUsecase) AddToWishlist(ctx context.Context, userID int64, productID int64) (model.Wishlist, error) {
	if userID <= 0 {
		return model.Wishlist{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Wishlist{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return model.Wishlist{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		return model.Wishlist{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	w, err := u.wishlistRepo.Create(ctx, model.Wishlist{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	})
	if err == repo.ErrConflict {
		return model.Wishlist{}, NewHTTPError(http.StatusConflict, "already in wishlist")
	}
	if err != nil {
		return model.Wishlist{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return w, nil
}

// 削除。他人の行は存在を漏らさないため404。
func (u *WishlistUsecase) RemoveFromWishlist(ctx context.Context, userID int64, id int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	w, err := u.wishlistRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if w.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.wishlistRepo.DeleteByID(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
