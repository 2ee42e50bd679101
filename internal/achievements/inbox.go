// Package achievements turns achievement lists embedded in backend responses
// into transient notifications.
package achievements

import (
	"encoding/json"
	"sync"

	"github.com/terraincognita07/stride/internal/models"
)

// Inbox queues achievements awaiting display. Current is the head of the
// queue; Hide dismisses it.
type Inbox struct {
	mu      sync.Mutex
	pending []models.Achievement
}

func NewInbox() *Inbox {
	return &Inbox{}
}

// Observe is a gateway observer. Bodies without an achievements array are
// ignored.
func (inbox *Inbox) Observe(body []byte) {
	var response struct {
		Achievements []models.Achievement `json:"achievements"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return
	}
	for _, achievement := range response.Achievements {
		inbox.Show(achievement)
	}
}

func (inbox *Inbox) Show(achievement models.Achievement) {
	if achievement.ID == "" && achievement.Title == "" {
		return
	}
	if achievement.Title == "" {
		if definition, ok := Lookup(achievement.ID); ok {
			achievement = definition.Achievement
		}
	}
	inbox.mu.Lock()
	defer inbox.mu.Unlock()
	inbox.pending = append(inbox.pending, achievement)
}

func (inbox *Inbox) Current() (models.Achievement, bool) {
	inbox.mu.Lock()
	defer inbox.mu.Unlock()
	if len(inbox.pending) == 0 {
		return models.Achievement{}, false
	}
	return inbox.pending[0], true
}

func (inbox *Inbox) Hide() {
	inbox.mu.Lock()
	defer inbox.mu.Unlock()
	if len(inbox.pending) > 0 {
		inbox.pending = inbox.pending[1:]
	}
}

func Lookup(id string) (Definition, bool) {
	for _, definition := range Catalog {
		if definition.ID == id {
			return definition, true
		}
	}
	return Definition{}, false
}
