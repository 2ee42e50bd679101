package models

// AchievementProgress is the backend's per-achievement progress record.
type AchievementProgress struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// UserProfile is the authenticated user's profile record.
type UserProfile struct {
	ID                       string                         `json:"PK"`
	ProfilePictureURL        string                         `json:"user_profile_picture_url"`
	Nickname                 string                         `json:"nickname"`
	FirstName                string                         `json:"first_name"`
	LastName                 string                         `json:"last_name"`
	Email                    string                         `json:"email"`
	Phone                    string                         `json:"phone"`
	Birthdate                string                         `json:"birthdate"`
	Gender                   bool                           `json:"gender"`
	Height                   string                         `json:"height"`
	Weight                   string                         `json:"weight"`
	NotificationSubscription bool                           `json:"notification_subscription"`
	Achievements             map[string]AchievementProgress `json:"achievements,omitempty"`
	NotFound                 bool                           `json:"error,omitempty"`
}

// BlankProfile is the placeholder held before the first fetch completes.
func BlankProfile() UserProfile {
	return UserProfile{Gender: true}
}

// MissingProfile marks an authenticated user who has not completed onboarding.
func MissingProfile() UserProfile {
	profile := BlankProfile()
	profile.NotFound = true
	return profile
}

func (profile UserProfile) Clone() UserProfile {
	cloned := profile
	if profile.Achievements != nil {
		cloned.Achievements = make(map[string]AchievementProgress, len(profile.Achievements))
		for key, value := range profile.Achievements {
			cloned.Achievements[key] = value
		}
	}
	return cloned
}
