package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByUserID(ctx context.Context, userID int64) (model.Profile, error)
	//メール確認トークンで検索（見つからなければErrNotFound）
	FindByVerificationToken(ctx context.Context, token string) (model.Profile, error)
	Update(ctx context.Context, p model.Profile) error
}
