package engine

import (
	"context"
	"testing"

	"github.com/estudiapro/demo-api/internal/models"
)

func TestTutorProfileLazyCreation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	// Students get an inactive profile.
	loginAs(t, e, "demo@estudiapro.com")
	out, err := e.Handle(ctx, EndpointTutorMe, "GET", nil)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if tp := out.(*models.TutorProfile); tp.Active {
		t.Fatal("student tutor profile must start inactive")
	}

	// Creators start active.
	loginAs(t, e, "creador@estudiapro.com")
	out, err = e.Handle(ctx, EndpointTutorMe, "GET", nil)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if tp := out.(*models.TutorProfile); !tp.Active || tp.UserID != "demo-creator" {
		t.Fatalf("creator profile should start active, got %+v", tp)
	}
}

func TestActiveTutorProfileJoinsListing(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "creador@estudiapro.com")

	if _, err := e.Handle(ctx, EndpointTutorMe, "PUT", map[string]any{
		"specialties": "Cálculo, Series",
		"bio":         "Mentora de cálculo",
		"tariff30":    float64(150),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := e.Handle(ctx, EndpointTutors, "GET", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, tut := range out.([]models.Tutor) {
		if tut.ID == "demo-creator" {
			found = true
			if tut.Name != "Ana García" || tut.Tariff30 != 150 {
				t.Fatalf("listing entry mismatch: %+v", tut)
			}
		}
	}
	if !found {
		t.Fatal("active creator profile missing from tutor listing")
	}

	// Deactivating removes it again.
	if _, err := e.Handle(ctx, EndpointTutorMe, "PUT", map[string]any{"active": false}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	out, err = e.Handle(ctx, EndpointTutors, "GET", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, tut := range out.([]models.Tutor) {
		if tut.ID == "demo-creator" {
			t.Fatal("inactive profile must not be listed")
		}
	}
}

func TestScheduleTutoring(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	before, err := e.Handle(ctx, EndpointUpcomingActivities, "GET", nil)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	n := len(before.([]models.Activity))

	out, err := e.Handle(ctx, EndpointScheduleTutor, "POST", map[string]any{
		"tutor_name": "Alejandra Ruiz",
		"date":       "2026-09-05",
		"time":       "17:00",
	})
	if err != nil {
		t.Fatalf("agendar: %v", err)
	}
	act := out.(map[string]any)["activity"].(models.Activity)
	if act.Origin != models.ActivityOriginManual {
		t.Fatalf("booked session must be a manual activity, got %+v", act)
	}

	after, err := e.Handle(ctx, EndpointUpcomingActivities, "GET", nil)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if len(after.([]models.Activity)) != n+1 {
		t.Fatalf("expected one new activity, had %d now %d", n, len(after.([]models.Activity)))
	}

	notifs, err := e.Handle(ctx, EndpointNotifications, "GET", nil)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	found := false
	for _, notif := range notifs.([]models.Notification) {
		if notif.Title == "Tutoría agendada" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected booking confirmation notification")
	}
}

func TestMarkNotificationsRead(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	if _, err := e.Handle(ctx, EndpointMarkNotificationRead, "POST", map[string]any{
		"notification_id": "notif-1",
	}); err != nil {
		t.Fatalf("leer: %v", err)
	}
	out, err := e.Handle(ctx, EndpointNotifications, "GET", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, n := range out.([]models.Notification) {
		if n.ID == "notif-1" && !n.Read {
			t.Fatal("notif-1 should be read")
		}
		if n.ID == "notif-2" && n.Read {
			t.Fatal("notif-2 should stay unread")
		}
	}

	// No id means mark everything.
	if _, err := e.Handle(ctx, EndpointMarkNotificationRead, "POST", nil); err != nil {
		t.Fatalf("leer all: %v", err)
	}
	out, err = e.Handle(ctx, EndpointNotifications, "GET", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, n := range out.([]models.Notification) {
		if !n.Read {
			t.Fatalf("notification %s still unread", n.ID)
		}
	}
}
