package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/terraincognita07/stride/internal/models"
)

var ErrSessionNotFound = errors.New("browser session not found")

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) Create(session *models.BrowserSession) error {
	return repo.database.Create(session).Error
}

// FindActive returns the session if it exists and has not expired at now.
func (repo *SessionRepository) FindActive(sessionID string, now time.Time) (models.BrowserSession, error) {
	var session models.BrowserSession
	err := repo.database.Where("id = ? AND expires_at > ?", sessionID, now).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.BrowserSession{}, ErrSessionNotFound
	}
	if err != nil {
		return models.BrowserSession{}, err
	}
	return session, nil
}

func (repo *SessionRepository) UpdateLanguage(sessionID string, language string) error {
	return repo.database.Model(&models.BrowserSession{}).Where("id = ?", sessionID).Update("language", language).Error
}

func (repo *SessionRepository) Delete(sessionID string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.UserInfoEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", sessionID).Delete(&models.BrowserSession{}).Error
	})
}

// DeleteExpired removes sessions that expired before now and returns their ids.
func (repo *SessionRepository) DeleteExpired(now time.Time) ([]string, error) {
	var expired []string
	if err := repo.database.Model(&models.BrowserSession{}).Where("expires_at <= ?", now).Pluck("id", &expired).Error; err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return nil, nil
	}
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN ?", expired).Delete(&models.UserInfoEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", expired).Delete(&models.BrowserSession{}).Error
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}
