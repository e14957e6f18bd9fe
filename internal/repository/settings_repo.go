package repository

import (
	"context"

	"jobledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsRepository stores the one-per-user business settings record.
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Settings, error)
	Upsert(ctx context.Context, settings *model.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Settings, error) {
	var settings model.Settings
	if err := GetDB(ctx, r.db).First(&settings, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert saves the full record, creating it on first save.
func (r *settingsRepository) Upsert(ctx context.Context, settings *model.Settings) error {
	db := GetDB(ctx, r.db)
	var existing model.Settings
	err := db.First(&existing, "user_id = ?", settings.UserID).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	settings.CreatedAt = existing.CreatedAt
	return db.Save(settings).Error
}
