package repository

import (
	"context"

	"app/internal/domain/model"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, rt *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	//使用済みにする（ローテーション）
	MarkUsed(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
}
