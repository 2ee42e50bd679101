package db

import "gorm.io/gorm"

type Repositories struct {
	Sessions *SessionRepository
	UserInfo *UserInfoRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Sessions: NewSessionRepository(database),
		UserInfo: NewUserInfoRepository(database),
	}
}
