package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ContactMessageGormRepository struct {
	db *gorm.DB
}

func NewContactMessageGormRepository(db *gorm.DB) *ContactMessageGormRepository {
	return &ContactMessageGormRepository{db: db}
}

func (r *ContactMessageGormRepository) Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.ContactMessage{}, err
	}
	return m, nil
}

func (r *ContactMessageGormRepository) List(ctx context.Context, page int, limit int) ([]model.ContactMessage, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ContactMessage{}).Count(&total).Error; err != nil {
		return []model.ContactMessage{}, 0, err
	}

	var items []model.ContactMessage
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return []model.ContactMessage{}, 0, err
	}
	return items, total, nil
}

func (r *ContactMessageGormRepository) FindByID(ctx context.Context, id int64) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ContactMessage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ContactMessage{}, err
	}
	return m, nil
}

func (r *ContactMessageGormRepository) MarkRead(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
