package models

type SyllabusUnit struct {
	Title string `json:"title"`
}

// Subject is a catalog entry. Enrollments embed a copy of it; later catalog
// edits do not reach already-enrolled students.
type Subject struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Professor   string         `json:"professor"`
	School      string         `json:"school"`
	Progress    int            `json:"progress"`
	Level       string         `json:"level"`
	Temario     []SyllabusUnit `json:"temario"`
}

// EnrolledSubject is the denormalized per-user copy of a catalog subject.
type EnrolledSubject struct {
	Subject
	ExamDate   string `json:"examDate"`
	ExamTime   string `json:"examTime,omitempty"`
	LastAccess string `json:"lastAccess,omitempty"`
}

const (
	ActivityOriginManual   = "MANUAL"
	ActivityOriginExamDate = "EXAM_DATE"
)

// Activity is an upcoming-activities entry. Entries with origin EXAM_DATE are
// derived: at most one exists per (user, subject) pair and it tracks that
// subject's exam date.
type Activity struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Origin    string `json:"origin"`
	SubjectID string `json:"subjectId,omitempty"`
}

type ProgressEntry struct {
	SubjectID  string `json:"subjectId"`
	Title      string `json:"title"`
	Progress   int    `json:"progress"`
	ExamDate   string `json:"examDate,omitempty"`
	LastAccess string `json:"lastAccess,omitempty"`
}

// DashboardSummary is the aggregate served by /mi-panel/.
type DashboardSummary struct {
	EnrolledSubjects    int       `json:"enrolledSubjects"`
	AverageProgress     int       `json:"averageProgress"`
	UnreadNotifications int       `json:"unreadNotifications"`
	NextActivity        *Activity `json:"nextActivity,omitempty"`
}
