package session

import "github.com/terraincognita07/stride/internal/models"

// UserPatch is a partial profile; nil fields are left untouched.
type UserPatch struct {
	ProfilePictureURL        *string
	Nickname                 *string
	FirstName                *string
	LastName                 *string
	Email                    *string
	Phone                    *string
	Birthdate                *string
	Gender                   *bool
	Height                   *string
	Weight                   *string
	NotificationSubscription *bool
	Achievements             map[string]models.AchievementProgress
	NotFound                 *bool
}

func (patch UserPatch) Apply(profile models.UserProfile) models.UserProfile {
	setString(&profile.ProfilePictureURL, patch.ProfilePictureURL)
	setString(&profile.Nickname, patch.Nickname)
	setString(&profile.FirstName, patch.FirstName)
	setString(&profile.LastName, patch.LastName)
	setString(&profile.Email, patch.Email)
	setString(&profile.Phone, patch.Phone)
	setString(&profile.Birthdate, patch.Birthdate)
	setString(&profile.Height, patch.Height)
	setString(&profile.Weight, patch.Weight)
	if patch.Gender != nil {
		profile.Gender = *patch.Gender
	}
	if patch.NotificationSubscription != nil {
		profile.NotificationSubscription = *patch.NotificationSubscription
	}
	if patch.NotFound != nil {
		profile.NotFound = *patch.NotFound
	}
	if patch.Achievements != nil {
		replaced := make(map[string]models.AchievementProgress, len(patch.Achievements))
		for key, value := range patch.Achievements {
			replaced[key] = value
		}
		profile.Achievements = replaced
	}
	return profile
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

func String(value string) *string {
	return &value
}

func Bool(value bool) *bool {
	return &value
}
