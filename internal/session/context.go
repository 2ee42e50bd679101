// Package session holds the per-browser-session cache of the current user's
// profile and the registry that scopes such state to one browser session.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/terraincognita07/stride/internal/gateway"
	"github.com/terraincognita07/stride/internal/models"
)

type ProfileFetcher interface {
	FetchUser(ctx context.Context) (models.UserProfile, error)
}

// Context caches the profile fetched once per session. Merge is the only
// writer; it never calls the backend.
type Context struct {
	fetcher ProfileFetcher

	loadMu sync.Mutex
	loaded bool

	mu      sync.RWMutex
	profile models.UserProfile
}

func NewContext(fetcher ProfileFetcher) *Context {
	return &Context{
		fetcher: fetcher,
		profile: models.BlankProfile(),
	}
}

// Load issues the GET_USER call of this context. Once it succeeds, or a 404
// stores the missing-profile sentinel, later calls return without touching
// the backend. Other failures keep the blank placeholder and the next call
// fetches again.
func (sessionContext *Context) Load(ctx context.Context) error {
	sessionContext.loadMu.Lock()
	defer sessionContext.loadMu.Unlock()
	if sessionContext.loaded {
		return nil
	}

	profile, err := sessionContext.fetcher.FetchUser(ctx)
	switch {
	case err == nil:
		sessionContext.store(profile)
	case gateway.IsNotFound(err):
		sessionContext.store(models.MissingProfile())
	default:
		slog.ErrorContext(ctx, "fetch user profile failed", "error", err)
		return err
	}
	sessionContext.loaded = true
	return nil
}

func (sessionContext *Context) User() models.UserProfile {
	sessionContext.mu.RLock()
	defer sessionContext.mu.RUnlock()
	return sessionContext.profile.Clone()
}

// Merge overwrites the fields set in patch and keeps every other field.
func (sessionContext *Context) Merge(patch UserPatch) models.UserProfile {
	sessionContext.mu.Lock()
	defer sessionContext.mu.Unlock()
	sessionContext.profile = patch.Apply(sessionContext.profile.Clone())
	return sessionContext.profile.Clone()
}

// Replace swaps the whole record, used to restore a snapshot after a failed
// profile save.
func (sessionContext *Context) Replace(profile models.UserProfile) {
	sessionContext.store(profile)
}

func (sessionContext *Context) store(profile models.UserProfile) {
	sessionContext.mu.Lock()
	defer sessionContext.mu.Unlock()
	sessionContext.profile = profile.Clone()
}
