package engine

import (
	"context"
	"strconv"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/models"
	"github.com/estudiapro/demo-api/internal/seed"
)

func (e *Engine) handleListTutors(ctx context.Context, req *request) (any, error) {
	if err := e.ensureTutorProfiles(ctx); err != nil {
		return nil, err
	}
	tutors := seed.Tutors()
	// Active creator profiles join the static catalog.
	if err := e.ensureExtraUsers(ctx); err != nil {
		return nil, err
	}
	for _, tp := range e.tutorProfiles {
		if !tp.Active {
			continue
		}
		name := tp.UserID
		if u, err := e.findUserByID(ctx, tp.UserID); err != nil {
			return nil, err
		} else if u != nil {
			name = models.FormatUser(u).Name
		}
		tutors = append(tutors, models.Tutor{
			ID:          tp.UserID,
			Name:        name,
			Specialties: tp.Specialties,
			Bio:         tp.Bio,
			Tariff30:    tp.Tariff30,
			Tariff60:    tp.Tariff60,
		})
	}
	return tutors, nil
}

func (e *Engine) findUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range seed.DemoProfiles() {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	if err := e.ensureExtraUsers(ctx); err != nil {
		return nil, err
	}
	for i := range e.extraUsers {
		if e.extraUsers[i].ID == id {
			u := e.extraUsers[i]
			return &u, nil
		}
	}
	return nil, nil
}

// sessionTutorProfile returns the current user's profile, creating it lazily.
// Only creators start active.
func (e *Engine) sessionTutorProfile(ctx context.Context) (*models.TutorProfile, error) {
	if err := e.ensureTutorProfiles(ctx); err != nil {
		return nil, err
	}
	u := e.sessionUser()
	key := userKey(u)
	if tp, ok := e.tutorProfiles[key]; ok {
		return tp, nil
	}
	tp := &models.TutorProfile{
		UserID: u.ID,
		Active: u.Role == models.RoleCreator,
	}
	e.tutorProfiles[key] = tp
	if err := e.saveTutorProfiles(ctx); err != nil {
		return nil, err
	}
	return tp, nil
}

func (e *Engine) handleGetTutorProfile(ctx context.Context, req *request) (any, error) {
	tp, err := e.sessionTutorProfile(ctx)
	if err != nil {
		return nil, err
	}
	return tp, nil
}

func (e *Engine) handleUpdateTutorProfile(ctx context.Context, req *request) (any, error) {
	tp, err := e.sessionTutorProfile(ctx)
	if err != nil {
		return nil, err
	}
	if v, ok := req.Data["specialties"]; ok {
		tp.Specialties, _ = v.(string)
	}
	if v, ok := req.Data["bio"]; ok {
		tp.Bio, _ = v.(string)
	}
	if v, ok := req.Data["active"]; ok {
		switch b := v.(type) {
		case bool:
			tp.Active = b
		case string:
			tp.Active = b == "true"
		}
	}
	if v := req.Data.String("tariff30"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			tp.Tariff30 = n
		}
	} else if f, ok := req.Data["tariff30"].(float64); ok {
		tp.Tariff30 = int(f)
	}
	if v := req.Data.String("tariff60"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			tp.Tariff60 = n
		}
	} else if f, ok := req.Data["tariff60"].(float64); ok {
		tp.Tariff60 = int(f)
	}
	if err := e.saveTutorProfiles(ctx); err != nil {
		return nil, err
	}
	e.bc.Broadcast(ctx, broadcast.KindTutors)
	return tp, nil
}

// handleScheduleTutoring books a session: it shows up as a manual upcoming
// activity plus a confirmation notification.
func (e *Engine) handleScheduleTutoring(ctx context.Context, req *request) (any, error) {
	tutorName := req.Data.String("tutor_name")
	if tutorName == "" {
		tutorName = req.Data.String("tutor_id")
	}
	date := req.Data.String("date")
	timeStr := req.Data.String("time")

	u, st, err := e.sessionState(ctx)
	if err != nil {
		return nil, err
	}

	activity := models.Activity{
		ID:     nextID("act"),
		Title:  "Tutoría con " + tutorName,
		Type:   "tutoria",
		Date:   date,
		Time:   timeStr,
		Origin: models.ActivityOriginManual,
	}
	st.UpcomingActivities = append(st.UpcomingActivities, activity)
	st.Notifications = append(st.Notifications, models.Notification{
		ID:      nextID("notif"),
		Title:   "Tutoría agendada",
		Message: "Tu tutoría con " + tutorName + " quedó agendada para el " + date + ".",
		Type:    "success",
		Date:    nowISO(),
	})

	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindActivities)
	return map[string]any{"success": true, "activity": activity}, nil
}
