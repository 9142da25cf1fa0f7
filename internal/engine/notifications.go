package engine

import (
	"context"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/seed"
)

func (e *Engine) handleNotifications(ctx context.Context, req *request) (any, error) {
	_, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	return deepCopy(st.Notifications), nil
}

// handleMarkNotificationRead flips one notification, or all of them when no
// id is given.
func (e *Engine) handleMarkNotificationRead(ctx context.Context, req *request) (any, error) {
	id := req.Data.String("notification_id")
	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	for i := range st.Notifications {
		if id == "" || st.Notifications[i].ID == id {
			st.Notifications[i].Read = true
		}
	}
	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}
	e.bc.Broadcast(ctx, broadcast.KindNotifications)
	return Result{Success: true}, nil
}

func (e *Engine) handleUpcomingActivities(ctx context.Context, req *request) (any, error) {
	_, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	return deepCopy(st.UpcomingActivities), nil
}

func (e *Engine) handleAchievements(ctx context.Context, req *request) (any, error) {
	return seed.Achievements(), nil
}

func (e *Engine) handleFormularies(ctx context.Context, req *request) (any, error) {
	if err := e.ensureFormularies(ctx); err != nil {
		return nil, err
	}
	return deepCopy(e.formularies), nil
}
