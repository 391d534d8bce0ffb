package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
}

func NewReviewUsecase(reviewRepo repo.ReviewRepository, productRepo repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviewRepo: reviewRepo, productRepo: productRepo}
}

type CreateReviewInput struct {
	ProductID int64
	Rating    int
	Comment   string
}

type UpdateReviewInput struct {
	Rating  int
	Comment string
}

// レビュー一覧。productIDが0なら全件（ページング付き）。
func (u *ReviewUsecase) ListReviews(ctx context.Context, productID int64, page int, limit int) ([]model.Review, error) {
	if productID > 0 {
		reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
		if err != nil {
			return []model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return reviews, nil
	}

	if page < 1 {
		return []model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return []model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	reviews, _, err := u.reviewRepo.ListAll(ctx, page, limit)
	if err != nil {
		return []model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reviews, nil
}

// レビュー作成。1商品につき1件まで。二重投稿は409。
func (u *ReviewUsecase) CreateReview(ctx context.Context, userID int64, in CreateReviewInput) (model.Review, error) {
	if userID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	//商品の存在確認
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rv, err := u.reviewRepo.Create(ctx, model.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now(),
	})
	if err == repo.ErrConflict {
		return model.Review{}, NewHTTPError(http.StatusConflict, "already reviewed")
	}
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rv, nil
}

// 自分のレビューだけ編集できる。他人のレビューは403。
func (u *ReviewUsecase) UpdateReview(ctx context.Context, userID int64, reviewID int64, in UpdateReviewInput) (model.Review, error) {
	if userID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reviewID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	rv, err := u.reviewRepo.FindByID(ctx, reviewID)
	if err == repo.ErrNotFound {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if rv.UserID != userID {
		return model.Review{}, NewHTTPError(http.StatusForbidden, "you can only edit your own reviews")
	}

	rv.Rating = in.Rating
	rv.Comment = in.Comment

	if err := u.reviewRepo.Update(ctx, rv); err != nil {
		if err == repo.ErrNotFound {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rv, nil
}

// 自分のレビューだけ削除できる。他人のレビューは403。
func (u *ReviewUsecase) DeleteReview(ctx context.Context, userID int64, reviewID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reviewID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	rv, err := u.reviewRepo.FindByID(ctx, reviewID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if rv.UserID != userID {
		return NewHTTPError(http.StatusForbidden, "you can only delete your own reviews")
	}

	if err := u.reviewRepo.DeleteByID(ctx, reviewID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
