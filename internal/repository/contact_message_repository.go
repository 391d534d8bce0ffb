package repository

import (
	"context"

	"app/internal/domain/model"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error)
	List(ctx context.Context, page int, limit int) ([]model.ContactMessage, int64, error)
	FindByID(ctx context.Context, id int64) (model.ContactMessage, error)
	MarkRead(ctx context.Context, id int64) error
}
