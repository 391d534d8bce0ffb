package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

func TestVerifyEmail_MarksVerifiedAndClearsToken(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	uc := NewVerifyEmailUsecase(profileRepo)

	profileRepo.On("FindByVerificationToken", mock.Anything, "tok-123").
		Return(model.Profile{UserID: 9, IsVerified: false, VerificationToken: "tok-123"}, nil)
	profileRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Profile) bool {
		return p.UserID == 9 && p.IsVerified && p.VerificationToken == ""
	})).Return(nil)

	err := uc.Execute(context.Background(), "tok-123")

	assert.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestVerifyEmail_UnknownTokenFails(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	uc := NewVerifyEmailUsecase(profileRepo)

	profileRepo.On("FindByVerificationToken", mock.Anything, "gone").
		Return(model.Profile{}, repo.ErrNotFound)

	err := uc.Execute(context.Background(), "gone")

	assert.ErrorIs(t, err, ErrInvalidVerificationToken)
}

func TestVerifyEmail_EmptyTokenFails(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	uc := NewVerifyEmailUsecase(profileRepo)

	err := uc.Execute(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidVerificationToken)
	profileRepo.AssertNotCalled(t, "FindByVerificationToken", mock.Anything, mock.Anything)
}

func TestVerifyEmail_AlreadyVerifiedIsIdempotent(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	uc := NewVerifyEmailUsecase(profileRepo)

	// トークンが既にクリア済みなら更新せず成功を返す
	profileRepo.On("FindByVerificationToken", mock.Anything, "tok-123").
		Return(model.Profile{UserID: 9, IsVerified: true, VerificationToken: ""}, nil)

	err := uc.Execute(context.Background(), "tok-123")

	assert.NoError(t, err)
	profileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
