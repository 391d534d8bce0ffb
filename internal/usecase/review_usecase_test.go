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

func TestCreateReview_DuplicateIs409(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewReviewUsecase(reviewRepo, productRepo)

	productRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1}, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).
		Return(model.Review{}, repo.ErrConflict)

	_, err := uc.CreateReview(context.Background(), 10, CreateReviewInput{
		ProductID: 1,
		Rating:    4,
		Comment:   "nice",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	uc := NewReviewUsecase(new(ReviewRepoMock), new(ProductRepoMock))

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.CreateReview(context.Background(), 10, CreateReviewInput{
			ProductID: 1,
			Rating:    rating,
		})

		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
}

func TestUpdateReview_NonOwnerIs403(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	uc := NewReviewUsecase(reviewRepo, new(ProductRepoMock))

	reviewRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Review{ID: 7, UserID: 999, Rating: 3}, nil)

	_, err := uc.UpdateReview(context.Background(), 10, 7, UpdateReviewInput{Rating: 5})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	//レビューは公開情報なので404ではなく403
	assert.Equal(t, http.StatusForbidden, he.Status)
	reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateReview_OwnerCanEdit(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	uc := NewReviewUsecase(reviewRepo, new(ProductRepoMock))

	reviewRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Review{ID: 7, UserID: 10, Rating: 3, Comment: "ok"}, nil)
	reviewRepo.On("Update", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ID == 7 && r.Rating == 5 && r.Comment == "better"
	})).Return(nil)

	out, err := uc.UpdateReview(context.Background(), 10, 7, UpdateReviewInput{
		Rating:  5,
		Comment: "better",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, out.Rating)
	reviewRepo.AssertExpectations(t)
}

func TestDeleteReview_NonOwnerIs403(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	uc := NewReviewUsecase(reviewRepo, new(ProductRepoMock))

	reviewRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Review{ID: 7, UserID: 999}, nil)

	err := uc.DeleteReview(context.Background(), 10, 7)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	reviewRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}
