package models

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notification is an in-app or push notification shown to the user.
type Notification struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Body      string `json:"text"`
	Icon      string `json:"icon,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
