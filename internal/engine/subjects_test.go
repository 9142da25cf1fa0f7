package engine

import (
	"context"
	"testing"

	"github.com/estudiapro/demo-api/internal/models"
)

func TestEnrollCopiesCatalogSnapshot(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	out, err := e.Handle(ctx, EndpointSubjects+"ecu-1/"+ActionEnroll+"/", "POST", nil)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	res := out.(map[string]any)
	if res["success"] != true {
		t.Fatalf("enrollment rejected: %+v", res)
	}

	enrolled := res["subject"].(models.EnrolledSubject)
	if enrolled.Progress != 0 {
		t.Fatalf("new enrollment must start at zero progress, got %d", enrolled.Progress)
	}

	// Catalog edits after enrollment never reach the copy.
	if _, err := e.Handle(ctx, EndpointAdminSubjects+"ecu-1/", "PUT", map[string]any{
		"title": "Renamed",
	}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	mine, err := e.Handle(ctx, EndpointUserSubjects, "GET", nil)
	if err != nil {
		t.Fatalf("my subjects: %v", err)
	}
	for _, s := range mine.([]models.EnrolledSubject) {
		if s.ID == "ecu-1" && s.Title == "Renamed" {
			t.Fatal("enrollment snapshot must not track catalog edits")
		}
	}
}

func TestEnrollTwiceRejected(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	// calc-1 is part of the seeded enrollments.
	out, err := e.Handle(ctx, EndpointSubjects+"calc-1/"+ActionEnroll+"/", "POST", nil)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if res, ok := out.(Result); !ok || res.Success {
		t.Fatalf("expected duplicate enrollment rejection, got %+v", out)
	}
}

func TestEnrollUnknownSubject(t *testing.T) {
	e, _ := newTestEngine(t)
	out, err := e.Handle(context.Background(), EndpointEnrollSubject, "POST", map[string]any{
		"subject_id": "nope",
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if res, ok := out.(Result); !ok || res.Success {
		t.Fatalf("expected soft failure, got %+v", out)
	}
}

func TestUnenrollRemovesSubjectActivities(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	if _, err := e.Handle(ctx, EndpointExamDate, "PUT", map[string]any{
		"subject_id": "calc-1",
		"exam_date":  "2026-09-30",
	}); err != nil {
		t.Fatalf("exam date: %v", err)
	}

	out, err := e.Handle(ctx, EndpointSubjects+"calc-1/"+ActionUnenroll+"/", "POST", nil)
	if err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	if res := out.(Result); !res.Success {
		t.Fatalf("unenroll rejected: %+v", res)
	}

	acts, err := e.Handle(ctx, EndpointUpcomingActivities, "GET", nil)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	for _, a := range acts.([]models.Activity) {
		if a.SubjectID == "calc-1" {
			t.Fatalf("activity %s should have been dropped with the enrollment", a.ID)
		}
	}
}

func TestExamDateKeepsSingleDerivedActivity(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	derived := func() []models.Activity {
		out, err := e.Handle(ctx, EndpointUpcomingActivities, "GET", nil)
		if err != nil {
			t.Fatalf("activities: %v", err)
		}
		var acts []models.Activity
		for _, a := range out.([]models.Activity) {
			if a.Origin == models.ActivityOriginExamDate && a.SubjectID == "calc-1" {
				acts = append(acts, a)
			}
		}
		return acts
	}
	countDerived := func() int { return len(derived()) }

	var firstID string
	for _, date := range []string{"2026-09-20", "2026-10-01", "2026-10-15"} {
		if _, err := e.Handle(ctx, EndpointExamDate, "PUT", map[string]any{
			"subject_id": "calc-1",
			"exam_date":  date,
		}); err != nil {
			t.Fatalf("exam date: %v", err)
		}
		acts := derived()
		if len(acts) != 1 {
			t.Fatalf("expected exactly one derived activity, got %d", len(acts))
		}
		if acts[0].Date != date {
			t.Fatalf("expected activity dated %s, got %s", date, acts[0].Date)
		}
		if firstID == "" {
			firstID = acts[0].ID
		} else if acts[0].ID != firstID {
			t.Fatalf("expected the activity updated in place, id changed %s -> %s", firstID, acts[0].ID)
		}
	}

	// Clearing the date removes the derived activity.
	if _, err := e.Handle(ctx, EndpointExamDate, "PUT", map[string]any{
		"subject_id": "calc-1",
		"exam_date":  "",
	}); err != nil {
		t.Fatalf("clear exam date: %v", err)
	}
	if got := countDerived(); got != 0 {
		t.Fatalf("expected derived activity removed, got %d", got)
	}
}

func TestUserSubjectsEmptyForNonStudents(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "creador@estudiapro.com")

	out, err := e.Handle(ctx, EndpointUserSubjects, "GET", nil)
	if err != nil {
		t.Fatalf("my subjects: %v", err)
	}
	if subjects := out.([]models.EnrolledSubject); len(subjects) != 0 {
		t.Fatalf("creators have no enrollments, got %d", len(subjects))
	}
}

func TestEnrollStudentsOnly(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	for _, identifier := range []string{"creador@estudiapro.com", "admin@estudiapro.com"} {
		loginAs(t, e, identifier)
		out, err := e.Handle(ctx, EndpointSubjects+"prob-1/"+ActionEnroll+"/", "POST", nil)
		if err != nil {
			t.Fatalf("enroll as %s: %v", identifier, err)
		}
		if res, ok := out.(Result); !ok || res.Success {
			t.Fatalf("expected enrollment rejection for %s, got %+v", identifier, out)
		}
	}
}

func TestMarkCompletedProgressClamp(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	progress := func() int {
		out, err := e.Handle(ctx, EndpointSubjects+"calc-1/"+ActionMyProgress+"/", "GET", nil)
		if err != nil {
			t.Fatalf("progress: %v", err)
		}
		return out.(models.ProgressEntry).Progress
	}

	start := progress()
	// res-001 belongs to calc-1 and is already purchased.
	for i := 0; i < 5; i++ {
		if _, err := e.Handle(ctx, EndpointResources+"res-001/"+ActionMarkCompleted+"/", "POST", nil); err != nil {
			t.Fatalf("mark completed: %v", err)
		}
	}
	if got, want := progress(), min(start+25, 100); got != want {
		t.Fatalf("progress = %d, want %d", got, want)
	}

	for i := 0; i < 30; i++ {
		if _, err := e.Handle(ctx, EndpointResources+"res-001/"+ActionMarkCompleted+"/", "POST", nil); err != nil {
			t.Fatalf("mark completed: %v", err)
		}
	}
	if got := progress(); got != 100 {
		t.Fatalf("progress must clamp at 100, got %d", got)
	}
}

func TestDashboardSummary(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	out, err := e.Handle(ctx, EndpointDashboard, "GET", nil)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	sum := out.(models.DashboardSummary)
	if sum.EnrolledSubjects != 3 {
		t.Fatalf("expected 3 seeded enrollments, got %d", sum.EnrolledSubjects)
	}
	if sum.NextActivity == nil {
		t.Fatal("expected a next activity from the starter list")
	}
}
