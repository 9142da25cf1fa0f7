package models

type ForumPost struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	Votes     int    `json:"votes"`
}

type ForumTopic struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	SubjectName string      `json:"subjectName"`
	Views       int         `json:"views"`
	Posts       []ForumPost `json:"posts"`
}

// ForumSummary is the list-view row: post bodies stay out of the listing.
type ForumSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	SubjectName  string `json:"subjectName"`
	PostCount    int    `json:"postCount"`
	LastActivity string `json:"lastActivity,omitempty"`
}

func (t *ForumTopic) Summary() ForumSummary {
	s := ForumSummary{
		ID:          t.ID,
		Title:       t.Title,
		SubjectName: t.SubjectName,
		PostCount:   len(t.Posts),
	}
	if n := len(t.Posts); n > 0 {
		s.LastActivity = t.Posts[n-1].CreatedAt
	}
	return s
}
