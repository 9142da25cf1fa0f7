package engine

import (
	"context"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/models"
	"github.com/estudiapro/demo-api/internal/seed"
)

// The premium catalog is static; only the per-user purchase list persists.

func findResource(id string) *models.Resource {
	for _, r := range seed.Resources() {
		if r.ID == id {
			r := r
			return &r
		}
	}
	return nil
}

func (e *Engine) handleListResources(ctx context.Context, req *request) (any, error) {
	return seed.Resources(), nil
}

func (e *Engine) handlePurchasedResources(ctx context.Context, req *request) (any, error) {
	_, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Resource, 0, len(st.PurchasedResources))
	for _, id := range st.PurchasedResources {
		if r := findResource(id); r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (e *Engine) handlePurchaseResource(ctx context.Context, req *request) (any, error) {
	resourceID := req.Data.String("resource_id")
	resource := findResource(resourceID)
	if resource == nil {
		return nil, ErrResourceNotFound
	}

	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range st.PurchasedResources {
		if id == resourceID {
			return Result{Success: false, Message: "Ya compraste este recurso"}, nil
		}
	}
	st.PurchasedResources = append(st.PurchasedResources, resourceID)
	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindResources)
	return map[string]any{"success": true, "resource": resource}, nil
}

func (e *Engine) handleDownloadResource(ctx context.Context, req *request) (any, error) {
	resourceID := req.Params["id"]
	if resourceID == "" {
		resourceID = req.Data.String("resource_id")
	}
	resource := findResource(resourceID)
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	_, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	if !resource.Free {
		owned := false
		for _, id := range st.PurchasedResources {
			if id == resourceID {
				owned = true
				break
			}
		}
		if !owned {
			return Result{Success: false, Message: "Debes comprar este recurso antes de descargarlo"}, nil
		}
	}
	return map[string]any{"success": true, "url": "/descargas/" + resource.ID + ".pdf"}, nil
}

// handleMarkCompleted bumps the enrollment's progress by a fixed step,
// clamped at 100 and never decreasing, and stamps last access.
func (e *Engine) handleMarkCompleted(ctx context.Context, req *request) (any, error) {
	resourceID := req.Params["id"]
	resource := findResource(resourceID)
	if resource == nil {
		return nil, ErrResourceNotFound
	}

	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	for i := range st.Subjects {
		s := &st.Subjects[i]
		if s.ID != resource.SubjectID {
			continue
		}
		if next := s.Progress + 5; next > s.Progress {
			s.Progress = min(next, 100)
		}
		s.LastAccess = nowISO()
		break
	}
	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindSubjects)
	return Result{Success: true}, nil
}
