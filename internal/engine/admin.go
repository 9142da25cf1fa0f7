package engine

import (
	"context"
	"strings"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/models"
	"github.com/estudiapro/demo-api/internal/storage"
)

func (e *Engine) handleAdminListUsers(ctx context.Context, req *request) (any, error) {
	if err := e.ensureAdminUsers(ctx); err != nil {
		return nil, err
	}
	return deepCopy(e.adminUsers), nil
}

// handleAdminManageUser edits one managed user. action=delete removes the
// row, the registered account behind it, and its per-user state; any other
// call merges the editable fields. Role never changes through this path.
func (e *Engine) handleAdminManageUser(ctx context.Context, req *request) (any, error) {
	userID := req.Params["id"]
	if err := e.ensureAdminUsers(ctx); err != nil {
		return nil, err
	}

	idx := -1
	for i := range e.adminUsers {
		if e.adminUsers[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{Success: false, Message: "Usuario no encontrado"}, nil
	}

	if strings.EqualFold(req.Data.String("action"), "delete") {
		removed := e.adminUsers[idx]
		e.adminUsers = append(e.adminUsers[:idx], e.adminUsers[idx+1:]...)
		if err := e.saveAdminUsers(ctx); err != nil {
			return nil, err
		}

		if err := e.ensureExtraUsers(ctx); err != nil {
			return nil, err
		}
		kept := e.extraUsers[:0]
		for _, u := range e.extraUsers {
			if u.ID == userID {
				continue
			}
			kept = append(kept, u)
		}
		if len(kept) != len(e.extraUsers) {
			e.extraUsers = kept
			if err := e.saveExtraUsers(ctx); err != nil {
				return nil, err
			}
		}

		if err := e.ensureUserStates(ctx); err != nil {
			return nil, err
		}
		for _, key := range []string{userID, strings.ToLower(removed.Email)} {
			delete(e.userStates, key)
		}
		if err := e.touchUserState(ctx); err != nil {
			return nil, err
		}

		e.bc.Broadcast(ctx, broadcast.KindUsers)
		return Result{Success: true}, nil
	}

	row := &e.adminUsers[idx]
	if v := req.Data.String("name"); v != "" {
		row.Name = v
	}
	if v := req.Data.String("email"); v != "" {
		row.Email = strings.ToLower(v)
	}
	if v, ok := req.Data["verified"]; ok {
		switch b := v.(type) {
		case bool:
			row.Verified = b
		case string:
			row.Verified = b == "true"
		}
	}
	if err := e.saveAdminUsers(ctx); err != nil {
		return nil, err
	}
	e.bc.Broadcast(ctx, broadcast.KindUsers)
	return map[string]any{"success": true, "user": *row}, nil
}

func subjectFromPayload(data Payload, base models.Subject) models.Subject {
	if v := data.String("title"); v != "" {
		base.Title = v
	}
	if v := data.String("description"); v != "" {
		base.Description = v
	}
	if v := data.String("professor"); v != "" {
		base.Professor = v
	}
	if v := data.String("school"); v != "" {
		base.School = v
	}
	if v := data.String("level"); v != "" {
		base.Level = v
	}
	return base
}

func (e *Engine) handleAdminCreateSubject(ctx context.Context, req *request) (any, error) {
	if err := e.ensureSubjects(ctx); err != nil {
		return nil, err
	}
	subject := subjectFromPayload(req.Data, models.Subject{ID: nextID("subj")})
	if subject.Title == "" {
		return Result{Success: false, Message: "El título es obligatorio"}, nil
	}
	e.subjects = append(e.subjects, subject)
	if err := e.saveSubjects(ctx); err != nil {
		return nil, err
	}
	e.bc.Broadcast(ctx, broadcast.KindSubjects)
	return map[string]any{"success": true, "subject": subject}, nil
}

// handleAdminUpdateSubject edits the catalog entry only. Existing
// enrollments keep their snapshot.
func (e *Engine) handleAdminUpdateSubject(ctx context.Context, req *request) (any, error) {
	if err := e.ensureSubjects(ctx); err != nil {
		return nil, err
	}
	subject := e.findSubject(req.Params["id"])
	if subject == nil {
		return Result{Success: false, Message: "Materia no encontrada"}, nil
	}
	*subject = subjectFromPayload(req.Data, *subject)
	if err := e.saveSubjects(ctx); err != nil {
		return nil, err
	}
	e.bc.Broadcast(ctx, broadcast.KindSubjects)
	return map[string]any{"success": true, "subject": *subject}, nil
}

// handleAdminDeleteSubject cascades: the catalog entry, every user's
// enrollment in it, and every activity pointing at it all go in one atomic
// write. Either both namespaces update or neither does.
func (e *Engine) handleAdminDeleteSubject(ctx context.Context, req *request) (any, error) {
	subjectID := req.Params["id"]
	if err := e.ensureSubjects(ctx); err != nil {
		return nil, err
	}
	if e.findSubject(subjectID) == nil {
		return Result{Success: false, Message: "Materia no encontrada"}, nil
	}
	if err := e.ensureUserStates(ctx); err != nil {
		return nil, err
	}

	kept := e.subjects[:0]
	for _, s := range e.subjects {
		if s.ID == subjectID {
			continue
		}
		kept = append(kept, s)
	}
	e.subjects = kept

	for _, st := range e.userStates {
		subjects := st.Subjects[:0]
		for _, s := range st.Subjects {
			if s.ID == subjectID {
				continue
			}
			subjects = append(subjects, s)
		}
		st.Subjects = subjects

		acts := st.UpcomingActivities[:0]
		for _, a := range st.UpcomingActivities {
			if a.SubjectID == subjectID {
				continue
			}
			acts = append(acts, a)
		}
		st.UpcomingActivities = acts
	}

	if err := e.store.SaveMulti(ctx, map[string]any{
		storage.KeySubjects:   e.subjects,
		storage.KeyUserStates: e.userStates,
	}); err != nil {
		return nil, err
	}

	if e.currentUser != nil {
		if err := e.hydrateUser(ctx, e.currentUser); err != nil {
			return nil, err
		}
	}

	e.bc.Broadcast(ctx, broadcast.KindSubjects)
	return Result{Success: true}, nil
}
