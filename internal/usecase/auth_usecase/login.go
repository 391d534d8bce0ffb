package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	// メール不明とパスワード違いは同じエラーにまとめる
	ErrInvalidCredentials = errors.New("invalid credentials")
	// 停止されたアカウント
	ErrUserInactive = errors.New("user is inactive")
)

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
}

// アクセストークンの発行を署名方式から切り離す
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (token string, expiresAt time.Time, err error)
}

// 平文パスワードと保存ハッシュの照合
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// LoginUsecaseはメール＋パスワードでセッションを開く。
type LoginUsecase struct {
	userRepo   repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	verifier   PasswordVerifier
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:   userRepo,
		rtRepo:     rtRepo,
		verifier:   verifier,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (SessionOutput, RefreshGrant, error) {
	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SessionOutput{}, RefreshGrant{}, ErrInvalidCredentials
		}
		return SessionOutput{}, RefreshGrant{}, err
	}

	if !user.IsActive {
		return SessionOutput{}, RefreshGrant{}, ErrUserInactive
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return SessionOutput{}, RefreshGrant{}, ErrInvalidCredentials
	}

	now := u.clock.Now()
	user.LastLoginAt = &now

	out, grant, err := openSession(ctx, u.rtRepo, u.issuer, u.idGen, user, in.UserAgent, now, u.refreshTTL)
	if err != nil {
		return SessionOutput{}, RefreshGrant{}, err
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return SessionOutput{}, RefreshGrant{}, err
	}

	return out, grant, nil
}
