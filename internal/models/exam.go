package models

type ExamQuestion struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Answer       string `json:"answer"`
	Explanation  string `json:"explanation"`
	WolframQuery string `json:"wolframQuery,omitempty"`
}

type Exam struct {
	ID          string         `json:"id"`
	SubjectID   string         `json:"subjectId"`
	SubjectName string         `json:"subjectName"`
	Title       string         `json:"title"`
	Duration    int            `json:"duration"`
	Questions   []ExamQuestion `json:"questions"`
}

// ExamResult mirrors the real backend's grading response.
type ExamResult struct {
	Calificacion int `json:"calificacion"`
	Correctas    int `json:"correctas"`
	Total        int `json:"total"`
}

// Tutor is a catalog entry on the tutoring marketplace.
type Tutor struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Sessions    int     `json:"sessions"`
	Specialties string  `json:"specialties"`
	Bio         string  `json:"bio"`
	Tariff30    int     `json:"tariff30"`
	Tariff60    int     `json:"tariff60"`
}

// TutorProfile is the per-creator editable record behind /tutores/me/.
// Created lazily; active by default only for CREADOR users.
type TutorProfile struct {
	UserID      string `json:"userId"`
	Specialties string `json:"specialties"`
	Bio         string `json:"bio"`
	Active      bool   `json:"active"`
	Tariff30    int    `json:"tariff30"`
	Tariff60    int    `json:"tariff60"`
}
