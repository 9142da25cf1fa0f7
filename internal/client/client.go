// Package client is the single API surface the UI talks to. It serves every
// call from the local engine while demo mode is on, and proxies the same
// paths to the real backend over HTTP when it is off. Response shapes are
// identical either way.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/estudiapro/demo-api/internal/config"
	"github.com/estudiapro/demo-api/internal/engine"
	"github.com/estudiapro/demo-api/internal/models"
	"github.com/estudiapro/demo-api/internal/storage"
)

type Client struct {
	engine  *engine.Engine
	store   *storage.Store
	http    *http.Client
	baseURL string
	logger  *slog.Logger
	demo    bool
}

func New(cfg *config.Config, eng *engine.Engine, store *storage.Store, logger *slog.Logger) (*Client, error) {
	c := &Client{
		engine:  eng,
		store:   store,
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimSuffix(cfg.APIBaseURL, "/"),
		logger:  logger,
	}
	flag, err := store.LoadString(context.Background(), storage.KeyDemoMode)
	if err != nil {
		return nil, err
	}
	c.demo = flag != "false"
	return c, nil
}

// DemoMode reports whether calls are served locally.
func (c *Client) DemoMode() bool {
	return c.demo
}

// SetDemoMode flips between the local engine and the real backend. Either
// direction drops the stored auth token and resets the engine session, so
// the next profile fetch forces a fresh login.
func (c *Client) SetDemoMode(ctx context.Context, on bool) error {
	if c.demo == on {
		return nil
	}
	c.demo = on
	if err := c.store.SaveString(ctx, storage.KeyDemoMode, fmt.Sprintf("%t", on)); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, storage.KeyAuthToken); err != nil {
		return err
	}
	c.engine.ResetSession()
	c.logger.Info("demo mode toggled", "demo", on)
	return nil
}

// request routes one call. Demo mode never touches the network.
func (c *Client) request(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	if c.demo {
		out, err := c.engine.Handle(ctx, path, method, payload)
		if err != nil {
			return nil, err
		}
		return json.Marshal(out)
	}
	return c.httpRequest(ctx, method, path, payload)
}

func (c *Client) httpRequest(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil && method != http.MethodGet {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if method == http.MethodGet {
		if q, ok := payload.(url.Values); ok && len(q) > 0 {
			target += "?" + q.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, err := c.store.LoadString(ctx, storage.KeyAuthToken); err != nil {
		return nil, err
	} else if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, engine.ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("backend returned %d for %s %s", resp.StatusCode, method, path)
	}
	return raw, nil
}

func decodeInto[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, nil
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

// ----- auth -----

// LoginResult is the normalized login shape. The real backend returns a bare
// token object on success; the demo engine returns an explicit envelope.
// Callers only ever see this struct.
type LoginResult struct {
	Success bool            `json:"success"`
	Token   string          `json:"token,omitempty"`
	User    *models.Profile `json:"user,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (c *Client) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointLogin, map[string]any{
		"username": identifier,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[LoginResult](raw)
	if err != nil {
		return nil, err
	}
	if res.Token != "" {
		res.Success = true
		if !c.demo {
			if err := c.store.SaveString(ctx, storage.KeyAuthToken, res.Token); err != nil {
				return nil, err
			}
		}
	}
	return &res, nil
}

type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"rol,omitempty"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*engine.Result, error) {
	payload := map[string]any{
		"username":   in.Username,
		"email":      in.Email,
		"password":   in.Password,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"rol":        in.Role,
	}
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointRegister, payload)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodPost, engine.EndpointLogout, nil)
	return err
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointProfile, nil)
	if err != nil {
		return nil, err
	}
	p, err := decodeInto[models.Profile](raw)
	return &p, err
}

func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*models.Profile, error) {
	raw, err := c.request(ctx, http.MethodPut, engine.EndpointUpdateProfile, fields)
	if err != nil {
		return nil, err
	}
	var out struct {
		User *models.Profile `json:"user"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// ----- student views -----

func (c *Client) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointDashboard, nil)
	if err != nil {
		return nil, err
	}
	d, err := decodeInto[models.DashboardSummary](raw)
	return &d, err
}

func (c *Client) Progress(ctx context.Context) ([]models.ProgressEntry, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointProgress, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.ProgressEntry](raw)
}

// ----- subjects -----

func (c *Client) Subjects(ctx context.Context) ([]models.Subject, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointSubjects, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Subject](raw)
}

func (c *Client) MySubjects(ctx context.Context) ([]models.EnrolledSubject, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointUserSubjects, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.EnrolledSubject](raw)
}

func (c *Client) Enroll(ctx context.Context, subjectID string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointSubjects+subjectID+"/"+engine.ActionEnroll+"/", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) Unenroll(ctx context.Context, subjectID string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointSubjects+subjectID+"/"+engine.ActionUnenroll+"/", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) SetExamDate(ctx context.Context, subjectID, date, timeOfDay string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPut, engine.EndpointExamDate, map[string]any{
		"subject_id": subjectID,
		"exam_date":  date,
		"exam_time":  timeOfDay,
	})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) SubjectProgress(ctx context.Context, subjectID string) (*models.ProgressEntry, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointSubjects+subjectID+"/"+engine.ActionMyProgress+"/", nil)
	if err != nil {
		return nil, err
	}
	p, err := decodeInto[models.ProgressEntry](raw)
	return &p, err
}

// ----- premium resources -----

func (c *Client) Resources(ctx context.Context) ([]models.Resource, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointResources, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Resource](raw)
}

func (c *Client) PurchasedResources(ctx context.Context) ([]models.Resource, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointPurchasedResources, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Resource](raw)
}

func (c *Client) PurchaseResource(ctx context.Context, resourceID string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointPurchaseResource, map[string]any{"resource_id": resourceID})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

// DownloadResult carries the resolved download reference.
type DownloadResult struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	Descargas int    `json:"descargas,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (c *Client) DownloadResource(ctx context.Context, resourceID string) (*DownloadResult, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointDownloadResource, map[string]any{"resource_id": resourceID})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[DownloadResult](raw)
	return &res, err
}

func (c *Client) MarkCompleted(ctx context.Context, resourceID string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointResources+resourceID+"/"+engine.ActionMarkCompleted+"/", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

// ----- exams -----

func (c *Client) Exams(ctx context.Context) ([]models.Exam, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointExams, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Exam](raw)
}

func (c *Client) StartExam(ctx context.Context, examID string) (*models.Exam, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointStartExam, map[string]any{"exam_id": examID})
	if err != nil {
		return nil, err
	}
	ex, err := decodeInto[models.Exam](raw)
	return &ex, err
}

func (c *Client) SubmitExam(ctx context.Context, examID string, answers map[string]any) (*models.ExamResult, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointSubmitExam, map[string]any{
		"exam_id":    examID,
		"respuestas": answers,
	})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[models.ExamResult](raw)
	return &res, err
}

// ----- tutoring -----

func (c *Client) Tutors(ctx context.Context) ([]models.Tutor, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointTutors, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Tutor](raw)
}

func (c *Client) TutorProfile(ctx context.Context) (*models.TutorProfile, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointTutorMe, nil)
	if err != nil {
		return nil, err
	}
	tp, err := decodeInto[models.TutorProfile](raw)
	return &tp, err
}

func (c *Client) UpdateTutorProfile(ctx context.Context, fields map[string]any) (*models.TutorProfile, error) {
	raw, err := c.request(ctx, http.MethodPut, engine.EndpointTutorMe, fields)
	if err != nil {
		return nil, err
	}
	tp, err := decodeInto[models.TutorProfile](raw)
	return &tp, err
}

func (c *Client) ScheduleTutoring(ctx context.Context, tutorName, date, timeOfDay string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointScheduleTutor, map[string]any{
		"tutor_name": tutorName,
		"date":       date,
		"time":       timeOfDay,
	})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

// ----- forums -----

func (c *Client) Forums(ctx context.Context) ([]models.ForumSummary, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointForums, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.ForumSummary](raw)
}

func (c *Client) CreateTopic(ctx context.Context, title, subjectName, content string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointForums, map[string]any{
		"title":        title,
		"subject_name": subjectName,
		"content":      content,
	})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) Topic(ctx context.Context, topicID string) (*models.ForumTopic, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointForums+topicID+"/", nil)
	if err != nil {
		return nil, err
	}
	t, err := decodeInto[models.ForumTopic](raw)
	return &t, err
}

func (c *Client) Reply(ctx context.Context, topicID, content string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointForums+topicID+"/"+engine.ActionReply+"/", map[string]any{"content": content})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) Vote(ctx context.Context, topicID, postID, direction string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointForums+topicID+"/"+engine.ActionVote+"/", map[string]any{
		"post_id":   postID,
		"direction": direction,
	})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

// ----- misc catalog -----

func (c *Client) Achievements(ctx context.Context) ([]models.Achievement, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointAchievements, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Achievement](raw)
}

func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointNotifications, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Notification](raw)
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointMarkNotificationRead, map[string]any{"notification_id": notificationID})
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) UpcomingActivities(ctx context.Context) ([]models.Activity, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointUpcomingActivities, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Activity](raw)
}

func (c *Client) Formularies(ctx context.Context) ([]models.Formulary, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointFormularies, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.Formulary](raw)
}

// ----- admin -----

func (c *Client) AdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointAdminUsers, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.AdminUser](raw)
}

func (c *Client) AdminManageUser(ctx context.Context, userID string, fields map[string]any) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPut, engine.EndpointAdminUsers+userID+"/", fields)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) AdminCreateSubject(ctx context.Context, fields map[string]any) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointAdminSubjects, fields)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) AdminUpdateSubject(ctx context.Context, subjectID string, fields map[string]any) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPut, engine.EndpointAdminSubjects+subjectID+"/", fields)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) AdminDeleteSubject(ctx context.Context, subjectID string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodDelete, engine.EndpointAdminSubjects+subjectID+"/", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

// ----- community resources -----

func (c *Client) CommunityResources(ctx context.Context) ([]models.CommunityResource, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointCommunityResources, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.CommunityResource](raw)
}

func (c *Client) MyCommunityResources(ctx context.Context) ([]models.CommunityResource, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointMyCommunityResources, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.CommunityResource](raw)
}

func (c *Client) SearchCommunityResources(ctx context.Context, query string) ([]models.CommunityResource, error) {
	raw, err := c.request(ctx, http.MethodGet, engine.EndpointCommunitySearch, url.Values{"q": {query}})
	if err != nil {
		return nil, err
	}
	return decodeInto[[]models.CommunityResource](raw)
}

func (c *Client) CreateCommunityResource(ctx context.Context, fields map[string]any) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointCommunityResources, fields)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) UpdateCommunityResource(ctx context.Context, id string, fields map[string]any) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodPut, engine.EndpointCommunityResources+id+"/", fields)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) DeleteCommunityResource(ctx context.Context, id string) (*engine.Result, error) {
	raw, err := c.request(ctx, http.MethodDelete, engine.EndpointCommunityResources+id+"/", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[engine.Result](raw)
	return &res, err
}

func (c *Client) DownloadCommunityResource(ctx context.Context, id string) (*DownloadResult, error) {
	raw, err := c.request(ctx, http.MethodPost, engine.EndpointCommunityResources+id+"/"+engine.ActionDownload+"/", nil)
	if err != nil {
		return nil, err
	}
	res, err := decodeInto[DownloadResult](raw)
	return &res, err
}
