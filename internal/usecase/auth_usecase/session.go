package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// クライアントへ返すアクセストークン
type AccessToken struct {
	Value        string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

// ログイン・ローテーション共通のレスポンス
type SessionOutput struct {
	User  model.User  `json:"user"`
	Token AccessToken `json:"token"`
}

// handlerがCookieへ書くための平文リフレッシュトークン。
// JSONには載せない。
type RefreshGrant struct {
	PlainToken string
}

// openSessionはアクセストークンを発行し、リフレッシュトークンを
// ハッシュで保存して新しいセッションを開く。ログインとローテーションの共通部分。
func openSession(
	ctx context.Context,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	user *model.User,
	userAgent string,
	now time.Time,
	refreshTTL time.Duration,
) (SessionOutput, RefreshGrant, error) {
	access, expiresAt, err := issuer.Issue(user.ID, user.Role, user.TokenVersion, now)
	if err != nil {
		return SessionOutput{}, RefreshGrant{}, err
	}

	plain, err := randomToken(32)
	if err != nil {
		return SessionOutput{}, RefreshGrant{}, err
	}

	rt := &model.RefreshToken{
		ID:        idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hashRefreshToken(plain),
		UserAgent: userAgent,
		ExpiresAt: now.Add(refreshTTL),
	}
	if err := rtRepo.Create(ctx, rt); err != nil {
		return SessionOutput{}, RefreshGrant{}, err
	}

	out := SessionOutput{
		User: withoutSecrets(*user),
		Token: AccessToken{
			Value:        access,
			ExpiresIn:    int(expiresAt.Sub(now).Seconds()),
			TokenVersion: user.TokenVersion,
		},
	}
	return out, RefreshGrant{PlainToken: plain}, nil
}

// レスポンスに載せてはいけないものを落とす
func withoutSecrets(u model.User) model.User {
	u.PasswordHash = ""
	return u
}

// URLセーフなランダムトークン
func randomToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", errors.New("bytesLen must be positive")
	}

	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DBには平文ではなくsha256ハッシュだけを置く
func hashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
