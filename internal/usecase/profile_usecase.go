package usecase

import (
	"context"
	"net/http"
	"strings"

	repo "app/internal/repository"
)

type ProfileUsecase struct {
	profileRepo repo.ProfileRepository
	userRepo    repo.UserRepository
}

func NewProfileUsecase(profileRepo repo.ProfileRepository, userRepo repo.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{profileRepo: profileRepo, userRepo: userRepo}
}

// プロフィールのレスポンス。ユーザー情報と合成して返す。
type ProfileOutput struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	IsVerified bool   `json:"is_verified"`
}

type UpdateProfileInput struct {
	Phone   *string
	Address *string
}

func (u *ProfileUsecase) GetProfile(ctx context.Context, userID int64) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.profileRepo.FindByUserID(ctx, userID)
	if err != nil && err != repo.ErrNotFound {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProfileOutput{
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		IsVerified: p.IsVerified,
	}, nil
}

// 部分更新。nilのフィールドは変更しない。
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if len(phone) > 20 {
			return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "invalid phone")
		}
		p.Phone = phone
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}

	if err := u.profileRepo.Update(ctx, p); err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetProfile(ctx, userID)
}
