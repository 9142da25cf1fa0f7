package models

import "strings"

type Role string

const (
	RoleStudent Role = "ESTUDIANTE"
	RoleCreator Role = "CREADOR"
	RoleAdmin   Role = "ADMINISTRADOR"
)

// ValidRole reports whether s names one of the three demo roles.
// Matching is case-insensitive; the canonical form is uppercase Spanish,
// which is what the real backend stores.
func ValidRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(s)) {
	case RoleStudent, RoleCreator, RoleAdmin:
		return Role(strings.ToUpper(s)), true
	}
	return "", false
}

type Stats struct {
	Level  int `json:"level"`
	Points int `json:"points"`
	Streak int `json:"streak"`
}

// User is a profile template: identity fields plus the embedded defaults
// that seed a UserState the first time the profile is hydrated. Role is
// immutable after creation; ID is stable for the profile's lifetime.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	Role      Role   `json:"rol"`
	PhotoURL  string `json:"foto_perfil_url"`

	// Seeded demo identities carry a plaintext password (default demo123);
	// registered users carry a bcrypt hash instead.
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`

	Level  int `json:"nivel"`
	Points int `json:"puntos_gamificacion"`
	Streak int `json:"streak"`

	// Mutable view fields, overwritten on hydration from the per-user state.
	Subjects           []EnrolledSubject `json:"subjects,omitempty"`
	Notifications      []Notification    `json:"notifications,omitempty"`
	PurchasedResources []string          `json:"purchasedResources,omitempty"`
	UpcomingActivities []Activity        `json:"upcomingActivities,omitempty"`

	// Role-specific payloads
	Dashboard    *CreatorDashboard `json:"dashboard,omitempty"`
	AdminMetrics *AdminMetrics     `json:"adminMetrics,omitempty"`
}

type CreatorDashboard struct {
	Published      int               `json:"published"`
	Rating         float64           `json:"rating"`
	StudentsHelped int               `json:"studentsHelped"`
	Tutoring       []TutoringSession `json:"tutoring"`
}

type TutoringSession struct {
	ID       string `json:"id"`
	Student  string `json:"student"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
}

type AdminMetrics struct {
	Users     int `json:"users"`
	Subjects  int `json:"subjects"`
	Resources int `json:"resources"`
}

// Profile is the normalized user shape consumed by the UI, identical for
// demo and real-backend responses.
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Photo     string `json:"photo,omitempty"`
	Stats     Stats  `json:"stats"`
}

// FormatUser builds the canonical Profile from a raw user record.
func FormatUser(u *User) *Profile {
	if u == nil {
		return nil
	}
	name := u.Name
	if name == "" {
		name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if name == "" {
		name = u.Username
	}
	if name == "" {
		name = u.Email
	}
	role := string(u.Role)
	if role == "" {
		role = string(RoleStudent)
	}
	return &Profile{
		ID:        u.ID,
		Username:  coalesce(u.Username, u.Email),
		Email:     u.Email,
		Name:      name,
		Role:      strings.ToLower(role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Photo:     u.PhotoURL,
		Stats: Stats{
			Level:  max(u.Level, 1),
			Points: u.Points,
			Streak: u.Streak,
		},
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// UserState is the per-user mutable record, keyed by the user's identity key.
// It is created lazily on first hydration and persists independently of the
// profile template it was seeded from.
type UserState struct {
	Subjects           []EnrolledSubject `json:"subjects"`
	Notifications      []Notification    `json:"notifications"`
	PurchasedResources []string          `json:"purchasedResources"`
	UpcomingActivities []Activity        `json:"upcomingActivities"`
}

// AdminUser is the admin-facing summary row shown in user management.
type AdminUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Read    bool   `json:"read"`
	Date    string `json:"date"`
}
