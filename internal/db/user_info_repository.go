package db

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/terraincognita07/stride/internal/models"
)

type UserInfoRepository struct {
	database *gorm.DB
}

func NewUserInfoRepository(database *gorm.DB) *UserInfoRepository {
	return &UserInfoRepository{database: database}
}

// Find returns the stored payload, or nil when the session has none.
func (repo *UserInfoRepository) Find(sessionID string) (datatypes.JSON, error) {
	var entry models.UserInfoEntry
	err := repo.database.Where("session_id = ?", sessionID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry.Payload, nil
}

func (repo *UserInfoRepository) Upsert(sessionID string, payload datatypes.JSON) error {
	entry := models.UserInfoEntry{SessionID: sessionID, Payload: payload}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *UserInfoRepository) Delete(sessionID string) error {
	return repo.database.Where("session_id = ?", sessionID).Delete(&models.UserInfoEntry{}).Error
}
