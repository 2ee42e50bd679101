package api

import (
	"context"
	"log/slog"
	"time"
)

// StartSessionSweeper deletes expired sessions every interval and forgets
// their in-memory state. It stops when ctx is done.
func (handler *Handler) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				handler.sweepSessions(ctx)
			}
		}
	}()
}

func (handler *Handler) sweepSessions(ctx context.Context) int {
	expired, err := handler.repositories.Sessions.DeleteExpired(handler.now().UTC())
	if err != nil {
		slog.ErrorContext(ctx, "sweep expired sessions failed", "error", err)
		return 0
	}
	for _, sessionID := range expired {
		if err := handler.userInfo.Clear(ctx, sessionID); err != nil {
			slog.ErrorContext(ctx, "clear user info failed", "error", err)
		}
		handler.states.Drop(sessionID)
	}
	if len(expired) > 0 {
		slog.InfoContext(ctx, "expired sessions removed", "count", len(expired))
	}
	return len(expired)
}
