package engine

import (
	"context"
	"testing"

	"github.com/estudiapro/demo-api/internal/models"
)

func TestAdminCreateAndUpdateSubject(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "admin@estudiapro.com")

	out, err := e.Handle(ctx, EndpointAdminSubjects, "POST", map[string]any{
		"title":     "Topología",
		"professor": "Dra. Salas",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := out.(map[string]any)["subject"].(models.Subject)
	if created.ID == "" || created.Title != "Topología" {
		t.Fatalf("unexpected created subject %+v", created)
	}

	if _, err := e.Handle(ctx, EndpointAdminSubjects+created.ID+"/", "PUT", map[string]any{
		"description": "Espacios métricos y más",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := e.Handle(ctx, EndpointSubjects, "GET", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, s := range list.([]models.Subject) {
		if s.ID == created.ID && s.Description == "Espacios métricos y más" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected created subject with updated description in catalog")
	}
}

func TestAdminCreateSubjectRequiresTitle(t *testing.T) {
	e, _ := newTestEngine(t)
	out, err := e.Handle(context.Background(), EndpointAdminSubjects, "POST", map[string]any{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res, ok := out.(Result); !ok || res.Success {
		t.Fatalf("expected rejection without title, got %+v", out)
	}
}

func TestAdminDeleteSubjectCascades(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	// Two users enrolled in calc-1 with derived exam activities.
	loginAs(t, e, "demo@estudiapro.com")
	if _, err := e.Handle(ctx, EndpointExamDate, "PUT", map[string]any{
		"subject_id": "calc-1",
		"exam_date":  "2026-09-30",
	}); err != nil {
		t.Fatalf("exam date: %v", err)
	}

	if _, err := e.Handle(ctx, EndpointRegister, "POST", map[string]any{
		"username": "karla",
		"email":    "karla@example.com",
		"password": "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	out, err := e.Handle(ctx, EndpointLogin, "POST", map[string]any{
		"username": "karla",
		"password": "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !out.(loginResponse).Success {
		t.Fatal("karla login failed")
	}
	if _, err := e.Handle(ctx, EndpointSubjects+"calc-1/"+ActionEnroll+"/", "POST", nil); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	loginAs(t, e, "admin@estudiapro.com")
	del, err := e.Handle(ctx, EndpointAdminSubjects+"calc-1/", "DELETE", nil)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res := del.(Result); !res.Success {
		t.Fatalf("delete rejected: %+v", res)
	}

	// Catalog no longer lists it.
	list, err := e.Handle(ctx, EndpointSubjects, "GET", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, s := range list.([]models.Subject) {
		if s.ID == "calc-1" {
			t.Fatal("deleted subject still in catalog")
		}
	}

	// Every user's enrollment and activity for it is gone.
	for key, st := range e.userStates {
		for _, s := range st.Subjects {
			if s.ID == "calc-1" {
				t.Fatalf("user %s still enrolled in deleted subject", key)
			}
		}
		for _, a := range st.UpcomingActivities {
			if a.SubjectID == "calc-1" {
				t.Fatalf("user %s still has activity for deleted subject", key)
			}
		}
	}
}

func TestAdminDeleteUnknownSubject(t *testing.T) {
	e, _ := newTestEngine(t)
	out, err := e.Handle(context.Background(), EndpointAdminSubjects+"nope/", "DELETE", nil)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	res := out.(Result)
	if res.Success || res.Message != "Materia no encontrada" {
		t.Fatalf("expected soft failure, got %+v", res)
	}
}

func TestAdminManageUser(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := e.Handle(ctx, EndpointAdminUsers+"usr-003/", "PUT", map[string]any{
		"name":     "Luis H. Gómez",
		"verified": true,
		"role":     "administrador",
	})
	if err != nil {
		t.Fatalf("manage: %v", err)
	}
	row := out.(map[string]any)["user"].(models.AdminUser)
	if row.Name != "Luis H. Gómez" || !row.Verified {
		t.Fatalf("expected merged fields, got %+v", row)
	}
	if row.Role != models.RoleStudent {
		t.Fatalf("role must not change through admin edit, got %s", row.Role)
	}
}

func TestAdminDeleteUserRemovesState(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.Handle(ctx, EndpointRegister, "POST", map[string]any{
		"username": "victim",
		"email":    "victim@example.com",
		"password": "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	login, err := e.Handle(ctx, EndpointLogin, "POST", map[string]any{
		"username": "victim",
		"password": "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	userID := login.(loginResponse).User.ID

	out, err := e.Handle(ctx, EndpointAdminUsers+userID+"/", "PUT", map[string]any{"action": "delete"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res := out.(Result); !res.Success {
		t.Fatalf("delete rejected: %+v", res)
	}

	if _, ok := e.userStates[userID]; ok {
		t.Fatal("expected per-user state removed with the account")
	}
	relogin, err := e.Handle(ctx, EndpointLogin, "POST", map[string]any{
		"username": "victim",
		"password": "secret123",
	})
	if err != nil {
		t.Fatalf("relogin: %v", err)
	}
	if relogin.(loginResponse).Success {
		t.Fatal("deleted account must not log in")
	}
}
