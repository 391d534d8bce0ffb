package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/repository"
)

// 不明・失効・使用済みのリフレッシュトークン
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// RefreshUsecaseはリフレッシュトークンをローテーションする。
// 古いトークンを使用済みにしてから新しいペアを発行する。
type RefreshUsecase struct {
	userRepo   repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewRefreshUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *RefreshUsecase {
	return &RefreshUsecase{
		userRepo:   userRepo,
		rtRepo:     rtRepo,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

func (u *RefreshUsecase) Execute(ctx context.Context, plainRefresh string, userAgent string) (SessionOutput, RefreshGrant, error) {
	if plainRefresh == "" {
		return SessionOutput{}, RefreshGrant{}, ErrInvalidRefreshToken
	}

	current, err := u.rtRepo.FindByTokenHash(ctx, hashRefreshToken(plainRefresh))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SessionOutput{}, RefreshGrant{}, ErrInvalidRefreshToken
		}
		return SessionOutput{}, RefreshGrant{}, err
	}

	now := u.clock.Now()

	if current.RevokedAt != nil {
		return SessionOutput{}, RefreshGrant{}, ErrInvalidRefreshToken
	}
	//使用済みトークンがもう一度来たら盗難とみなして失効させる
	if current.UsedAt != nil {
		_ = u.rtRepo.Revoke(ctx, current.ID)
		return SessionOutput{}, RefreshGrant{}, ErrInvalidRefreshToken
	}
	if now.After(current.ExpiresAt) {
		return SessionOutput{}, RefreshGrant{}, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SessionOutput{}, RefreshGrant{}, ErrInvalidRefreshToken
		}
		return SessionOutput{}, RefreshGrant{}, err
	}
	if !user.IsActive {
		return SessionOutput{}, RefreshGrant{}, ErrUserInactive
	}

	if err := u.rtRepo.MarkUsed(ctx, current.ID); err != nil {
		return SessionOutput{}, RefreshGrant{}, err
	}

	return openSession(ctx, u.rtRepo, u.issuer, u.idGen, user, userAgent, now, u.refreshTTL)
}

// LogoutUsecaseは手元のリフレッシュトークンを失効させる。
// 不明なトークンはそのまま成功にする（冪等）。
type LogoutUsecase struct {
	rtRepo repository.RefreshTokenRepository
}

func NewLogoutUsecase(rtRepo repository.RefreshTokenRepository) *LogoutUsecase {
	return &LogoutUsecase{rtRepo: rtRepo}
}

func (u *LogoutUsecase) Execute(ctx context.Context, plainRefresh string) error {
	if plainRefresh == "" {
		return nil
	}

	current, err := u.rtRepo.FindByTokenHash(ctx, hashRefreshToken(plainRefresh))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return u.rtRepo.Revoke(ctx, current.ID)
}
