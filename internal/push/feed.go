package push

import (
	"sync"

	"github.com/terraincognita07/stride/internal/models"
)

const feedLimit = 20

// Feed keeps the most recent notifications shown to one session.
type Feed struct {
	mu    sync.Mutex
	items []models.Notification
}

func NewFeed() *Feed {
	return &Feed{}
}

// Display satisfies the Display signature.
func (feed *Feed) Display(notification models.Notification) error {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	feed.items = append(feed.items, notification)
	if len(feed.items) > feedLimit {
		feed.items = feed.items[len(feed.items)-feedLimit:]
	}
	return nil
}

// Recent returns notifications newest first.
func (feed *Feed) Recent() []models.Notification {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	recent := make([]models.Notification, 0, len(feed.items))
	for index := len(feed.items) - 1; index >= 0; index-- {
		recent = append(recent, feed.items[index])
	}
	return recent
}
