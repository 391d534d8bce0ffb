package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"app/internal/domain/model"
	appmail "app/internal/mail"
	repo "app/internal/repository"
)

type ContactUsecase struct {
	contactRepo repo.ContactMessageRepository
	mailer      appmail.Mailer
	logger      *zap.Logger
	adminEmail  string
}

func NewContactUsecase(contactRepo repo.ContactMessageRepository, mailer appmail.Mailer, logger *zap.Logger, adminEmail string) *ContactUsecase {
	return &ContactUsecase{
		contactRepo: contactRepo,
		mailer:      mailer,
		logger:      logger,
		adminEmail:  adminEmail,
	}
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Message string
}

// お問い合わせ送信。保存が本処理で、管理者への通知メールはベストエフォート。
func (u *ContactUsecase) SubmitContact(ctx context.Context, in SubmitContactInput) (model.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if name == "" || len(name) > 100 {
		return model.ContactMessage{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if _, err := mail.ParseAddress(email); err != nil || len(email) > 255 {
		return model.ContactMessage{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if message == "" {
		return model.ContactMessage{}, NewHTTPError(http.StatusBadRequest, "message is required")
	}

	saved, err := u.contactRepo.Create(ctx, model.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	})
	if err != nil {
		return model.ContactMessage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	body := fmt.Sprintf("From: %s <%s>\n\n%s", saved.Name, saved.Email, saved.Message)
	appmail.SendBestEffort(u.logger, u.mailer, u.adminEmail, "New contact message", body)

	return saved, nil
}

// 管理者向け一覧
func (u *ContactUsecase) AdminListContacts(ctx context.Context, page int, limit int) ([]model.ContactMessage, int64, error) {
	if page < 1 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.contactRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, total, nil
}

// 既読にする
func (u *ContactUsecase) AdminMarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.contactRepo.MarkRead(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
