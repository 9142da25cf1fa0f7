package engine

import (
	"context"

	"github.com/estudiapro/demo-api/internal/models"
)

// handleDashboard aggregates the student's home panel from the persisted
// state: enrollment count, mean progress, unread count, soonest activity.
func (e *Engine) handleDashboard(ctx context.Context, req *request) (any, error) {
	_, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}

	sum := models.DashboardSummary{EnrolledSubjects: len(st.Subjects)}
	if n := len(st.Subjects); n > 0 {
		total := 0
		for _, s := range st.Subjects {
			total += s.Progress
		}
		sum.AverageProgress = total / n
	}
	for _, n := range st.Notifications {
		if !n.Read {
			sum.UnreadNotifications++
		}
	}
	var next *models.Activity
	for i := range st.UpcomingActivities {
		a := st.UpcomingActivities[i]
		if a.Date == "" {
			continue
		}
		if next == nil || a.Date < next.Date {
			next = &a
		}
	}
	if next != nil {
		a := deepCopy(*next)
		sum.NextActivity = &a
	}
	return sum, nil
}

func (e *Engine) handleProgress(ctx context.Context, req *request) (any, error) {
	_, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]models.ProgressEntry, 0, len(st.Subjects))
	for _, s := range st.Subjects {
		entries = append(entries, models.ProgressEntry{
			SubjectID:  s.ID,
			Title:      s.Title,
			Progress:   s.Progress,
			ExamDate:   s.ExamDate,
			LastAccess: s.LastAccess,
		})
	}
	return entries, nil
}
