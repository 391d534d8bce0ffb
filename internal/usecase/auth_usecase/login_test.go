package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

func activeUser() *model.User {
	return &model.User{
		ID:           42,
		Username:     "asha",
		Email:        "asha@example.com",
		PasswordHash: "hashed:corr3ct-horse",
		Role:         model.RoleUser,
		TokenVersion: 3,
		IsActive:     true,
	}
}

func newLoginUsecaseForTest(userRepo *UserRepoMock, rtRepo *RefreshTokenRepoMock) *LoginUsecase {
	return NewLoginUsecase(
		userRepo,
		rtRepo,
		plainVerifier{},
		&fakeIssuer{ttl: 15 * time.Minute},
		&fakeIDGen{},
		&fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		14*24*time.Hour,
	)
}

func TestLogin_IssuesTokenPairAndUpdatesLastLogin(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newLoginUsecaseForTest(userRepo, rtRepo)

	userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(activeUser(), nil)
	rtRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		// 平文ではなくハッシュが保存される
		return rt.UserID == 42 && rt.TokenHash != "" && rt.UserAgent == "test-agent"
	})).Return(nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == 42 && u.LastLoginAt != nil
	})).Return(nil)

	out, side, err := uc.Execute(context.Background(), LoginInput{
		Email:     "asha@example.com",
		Password:  "corr3ct-horse",
		UserAgent: "test-agent",
	})

	assert.NoError(t, err)
	assert.Equal(t, "access-42-3", out.Token.Value)
	assert.Equal(t, 15*60, out.Token.ExpiresIn)
	assert.Equal(t, 3, out.Token.TokenVersion)
	assert.Empty(t, out.User.PasswordHash)
	assert.NotEmpty(t, side.PlainToken)
	// DBに入るのはsha256ハッシュ
	created := rtRepo.Calls[0].Arguments.Get(1).(*model.RefreshToken)
	assert.Equal(t, hashRefreshToken(side.PlainToken), created.TokenHash)
	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPasswordFails(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newLoginUsecaseForTest(userRepo, rtRepo)

	userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(activeUser(), nil)

	_, _, err := uc.Execute(context.Background(), LoginInput{
		Email:    "asha@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailFails(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newLoginUsecaseForTest(userRepo, rtRepo)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repo.ErrUserNotFound)

	_, _, err := uc.Execute(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "corr3ct-horse",
	})

	// 存在しないメールもパスワード違いと同じエラーにする
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUserFails(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newLoginUsecaseForTest(userRepo, rtRepo)

	u := activeUser()
	u.IsActive = false
	userRepo.On("FindByEmail", mock.Anything, "asha@example.com").Return(u, nil)

	_, _, err := uc.Execute(context.Background(), LoginInput{
		Email:    "asha@example.com",
		Password: "corr3ct-horse",
	})

	assert.ErrorIs(t, err, ErrUserInactive)
	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
