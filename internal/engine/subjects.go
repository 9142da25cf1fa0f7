package engine

import (
	"context"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/models"
)

func (e *Engine) handleListSubjects(ctx context.Context, req *request) (any, error) {
	if err := e.ensureSubjects(ctx); err != nil {
		return nil, err
	}
	return deepCopy(e.subjects), nil
}

// handleUserSubjects returns enrollments. Only students carry them; other
// roles get an empty list rather than an error.
func (e *Engine) handleUserSubjects(ctx context.Context, req *request) (any, error) {
	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleStudent {
		return []models.EnrolledSubject{}, nil
	}
	return deepCopy(st.Subjects), nil
}

func (e *Engine) findSubject(id string) *models.Subject {
	for i := range e.subjects {
		if e.subjects[i].ID == id {
			return &e.subjects[i]
		}
	}
	return nil
}

// handleEnroll serves both the body form (subject_id field) and the detail
// form (/cursos/{id}/inscribirse/). Only students enroll. Enrollment copies
// the catalog entry and zeroes progress; the copy never sees later catalog
// edits.
func (e *Engine) handleEnroll(ctx context.Context, req *request) (any, error) {
	if e.sessionUser().Role != models.RoleStudent {
		return Result{Success: false, Message: "Solo los estudiantes pueden inscribirse"}, nil
	}
	subjectID := req.Params["id"]
	if subjectID == "" {
		subjectID = req.Data.String("subject_id")
	}
	if err := e.ensureSubjects(ctx); err != nil {
		return nil, err
	}
	subject := e.findSubject(subjectID)
	if subject == nil {
		return Result{Success: false, Message: "Materia no encontrada"}, nil
	}

	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range st.Subjects {
		if s.ID == subjectID {
			return Result{Success: false, Message: "Ya estás inscrito en esta materia"}, nil
		}
	}

	enrolled := models.EnrolledSubject{Subject: deepCopy(*subject)}
	enrolled.Progress = 0
	st.Subjects = append(st.Subjects, enrolled)
	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindSubjects)
	return map[string]any{"success": true, "subject": enrolled}, nil
}

// handleUnenroll drops the enrollment and every activity tied to the
// subject, derived or manual.
func (e *Engine) handleUnenroll(ctx context.Context, req *request) (any, error) {
	subjectID := req.Params["id"]
	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	kept := st.Subjects[:0]
	for _, s := range st.Subjects {
		if s.ID == subjectID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return Result{Success: false, Message: "No estás inscrito en esta materia"}, nil
	}
	st.Subjects = kept

	acts := st.UpcomingActivities[:0]
	for _, a := range st.UpcomingActivities {
		if a.SubjectID == subjectID {
			continue
		}
		acts = append(acts, a)
	}
	st.UpcomingActivities = acts

	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindSubjects)
	return Result{Success: true}, nil
}

// handleExamDate sets or clears the exam date of one enrollment and keeps
// the derived activity in step: at most one EXAM_DATE activity exists per
// subject, updated in place, removed when the date is cleared.
func (e *Engine) handleExamDate(ctx context.Context, req *request) (any, error) {
	subjectID := req.Data.String("subject_id")
	examDate := req.Data.String("exam_date")
	examTime := req.Data.String("exam_time")

	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}

	var enrolled *models.EnrolledSubject
	for i := range st.Subjects {
		if st.Subjects[i].ID == subjectID {
			enrolled = &st.Subjects[i]
			break
		}
	}
	if enrolled == nil {
		return Result{Success: false, Message: "No estás inscrito en esta materia"}, nil
	}

	enrolled.ExamDate = examDate
	enrolled.ExamTime = examTime

	var derived *models.Activity
	acts := st.UpcomingActivities[:0]
	for i := range st.UpcomingActivities {
		a := st.UpcomingActivities[i]
		if a.Origin == models.ActivityOriginExamDate && a.SubjectID == subjectID {
			if examDate == "" || derived != nil {
				continue
			}
			acts = append(acts, a)
			derived = &acts[len(acts)-1]
			continue
		}
		acts = append(acts, a)
	}
	st.UpcomingActivities = acts
	if examDate != "" {
		if derived == nil {
			st.UpcomingActivities = append(st.UpcomingActivities, models.Activity{
				ID:        "act-exam-" + subjectID,
				Origin:    models.ActivityOriginExamDate,
				SubjectID: subjectID,
			})
			derived = &st.UpcomingActivities[len(st.UpcomingActivities)-1]
		}
		derived.Title = "Examen de " + enrolled.Title
		derived.Type = "examen"
		derived.Date = examDate
		derived.Time = examTime
	}

	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindActivities)
	return Result{Success: true}, nil
}

func (e *Engine) handleSubjectProgress(ctx context.Context, req *request) (any, error) {
	subjectID := req.Params["id"]
	_, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range st.Subjects {
		if s.ID == subjectID {
			return models.ProgressEntry{
				SubjectID:  s.ID,
				Title:      s.Title,
				Progress:   s.Progress,
				ExamDate:   s.ExamDate,
				LastAccess: s.LastAccess,
			}, nil
		}
	}
	return Result{Success: false, Message: "No estás inscrito en esta materia"}, nil
}
