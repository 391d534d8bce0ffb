package auth

import (
	"context"
	"errors"

	"app/internal/repository"
)

// トークンが見つからない（期限切れ・使用済み含む）
var ErrInvalidVerificationToken = errors.New("invalid verification token")

// メールアドレス確認。
// 成功するとis_verifiedを立ててトークンをクリアする。
type VerifyEmailUsecase struct {
	profileRepo repository.ProfileRepository
}

func NewVerifyEmailUsecase(profileRepo repository.ProfileRepository) *VerifyEmailUsecase {
	return &VerifyEmailUsecase{profileRepo: profileRepo}
}

func (u *VerifyEmailUsecase) Execute(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidVerificationToken
	}

	p, err := u.profileRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidVerificationToken
		}
		return err
	}

	//成功時にトークンをクリアするので、同じトークンでの2回目の呼び出しは
	//FindByVerificationTokenに掛からず404になる。ここを通るのは
	//フラグだけ先に立った行で、その場合は書き直さず成功にする。
	if p.IsVerified && p.VerificationToken == "" {
		return nil
	}

	p.IsVerified = true
	p.VerificationToken = ""
	return u.profileRepo.Update(ctx, p)
}
