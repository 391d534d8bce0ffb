package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type UserUsecase struct {
	userRepo  repo.UserRepository
	auditRepo repo.AuditLogRepository
}

func NewUserUsecase(userRepo repo.UserRepository, auditRepo repo.AuditLogRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, auditRepo: auditRepo}
}

type UserOutput struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	IsActive bool       `json:"is_active"`
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func (u *UserUsecase) GetMe(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(*user), nil
}

// 一般ユーザーは自分だけ、管理者は全員を返す。
func (u *UserUsecase) ListUsers(ctx context.Context, requesterID int64, isStaff bool, page int, limit int) ([]UserOutput, int64, error) {
	if requesterID <= 0 {
		return nil, 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if !isStaff {
		me, err := u.GetMe(ctx, requesterID)
		if err != nil {
			return nil, 0, err
		}
		return []UserOutput{me}, 1, nil
	}

	if page < 1 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	users, total, err := u.userRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserOutput, 0, len(users))
	for _, user := range users {
		outs = append(outs, toUserOutput(user))
	}
	return outs, total, nil
}

// 他人のレコードは存在を漏らさないため404。
func (u *UserUsecase) GetUser(ctx context.Context, requesterID int64, isStaff bool, targetID int64) (UserOutput, error) {
	if requesterID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !isStaff && targetID != requesterID {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return u.GetMe(ctx, targetID)
}

// アカウントの有効/無効を切り替える。
// 無効化したらtoken_versionを上げて既存トークンを失効させる。
func (u *UserUsecase) AdminSetActive(ctx context.Context, actorID int64, userID int64, active bool) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if actorID == userID {
		return NewHTTPError(http.StatusBadRequest, "cannot change your own account")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if user.IsActive == active {
		return nil
	}

	user.IsActive = active
	if err := u.userRepo.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !active {
		if err := u.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

// 監査ログの閲覧（管理者のみ）
func (u *UserUsecase) AdminListAuditLogs(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	if f.Page < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
