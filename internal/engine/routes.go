package engine

import (
	"context"
	"mime/multipart"
	"net/url"
	"strings"
	"time"
)

// Payload is the normalized request body: multipart forms and url-encoded
// values are flattened into it before any endpoint logic runs. Repeated keys
// become []string.
type Payload map[string]any

func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Map returns a nested object value, e.g. the answers map of an exam
// submission.
func (p Payload) Map(key string) map[string]any {
	if m, ok := p[key].(map[string]any); ok {
		return m
	}
	return nil
}

// Files returns uploaded file headers carried through from a multipart form.
func (p Payload) Files(key string) []*multipart.FileHeader {
	if fhs, ok := p[key].([]*multipart.FileHeader); ok {
		return fhs
	}
	return nil
}

// normalizePayload coerces the duck-typed payload shapes callers can pass
// (JSON-decoded maps, url.Values, multipart forms, nil) into one Payload.
func normalizePayload(data any) Payload {
	switch v := data.(type) {
	case nil:
		return Payload{}
	case Payload:
		return v
	case map[string]any:
		return Payload(v)
	case url.Values:
		out := Payload{}
		for key, vals := range v {
			if len(vals) == 1 {
				out[key] = vals[0]
			} else {
				out[key] = vals
			}
		}
		return out
	case *multipart.Form:
		out := Payload{}
		if v != nil {
			for key, vals := range v.Value {
				if len(vals) == 1 {
					out[key] = vals[0]
				} else {
					out[key] = vals
				}
			}
			for key, fhs := range v.File {
				out[key] = fhs
			}
		}
		return out
	default:
		return Payload{}
	}
}

type request struct {
	Method string
	Path   string
	Params map[string]string
	Data   Payload
}

type handlerFunc func(ctx context.Context, req *request) (any, error)

type route struct {
	method  string
	pattern string
	handler handlerFunc
}

// RouteMiss records a dispatch that fell through to the catch-all.
type RouteMiss struct {
	Path   string
	Method string
	At     time.Time
}

// matchPattern compares path segments against a pattern, capturing {name}
// segments. Trailing slashes are insignificant.
func matchPattern(pattern, path string) (map[string]string, bool) {
	pSegs := splitPath(pattern)
	segs := splitPath(path)
	if len(pSegs) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, ps := range pSegs {
		if strings.HasPrefix(ps, "{") && strings.HasSuffix(ps, "}") {
			if params == nil {
				params = make(map[string]string)
			}
			params[ps[1:len(ps)-1]] = segs[i]
			continue
		}
		if ps != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Handle is the single entry point of the emulator. It applies the
// artificial latency, normalizes the payload, and dispatches through the
// route table in order: literal routes first, templated detail routes after.
// Unknown routes resolve to an empty object so the UI survives
// endpoint-table drift, but they are logged and recorded.
func (e *Engine) Handle(ctx context.Context, path, method string, data any) (any, error) {
	if err := e.pause(ctx); err != nil {
		return nil, err
	}

	req := &request{
		Method: strings.ToUpper(method),
		Path:   path,
		Data:   normalizePayload(data),
	}

	for _, rt := range e.routes {
		if rt.method != req.Method {
			continue
		}
		params, ok := matchPattern(rt.pattern, path)
		if !ok {
			continue
		}
		req.Params = params
		return rt.handler(ctx, req)
	}

	e.logger.Warn("unhandled demo route", "path", path, "method", req.Method)
	e.misses = append(e.misses, RouteMiss{Path: path, Method: req.Method, At: time.Now()})
	return map[string]any{}, nil
}

// UnhandledRoutes exposes recorded catch-all hits, so callers (and tests)
// can observe endpoint-table drift.
func (e *Engine) UnhandledRoutes() []RouteMiss {
	return e.misses
}

func (e *Engine) buildRoutes() []route {
	return []route{
		// auth
		{"POST", EndpointLogin, e.handleLogin},
		{"POST", EndpointRegister, e.handleRegister},
		{"POST", EndpointLogout, e.handleLogout},
		{"GET", EndpointProfile, e.handleGetProfile},
		{"PUT", EndpointUpdateProfile, e.handleUpdateProfile},

		// user views
		{"GET", EndpointDashboard, e.handleDashboard},
		{"GET", EndpointProgress, e.handleProgress},

		// subjects
		{"GET", EndpointSubjects, e.handleListSubjects},
		{"GET", EndpointUserSubjects, e.handleUserSubjects},
		{"POST", EndpointEnrollSubject, e.handleEnroll},
		{"PUT", EndpointExamDate, e.handleExamDate},
		{"POST", EndpointSubjects + "{id}/" + ActionEnroll + "/", e.handleEnroll},
		{"POST", EndpointSubjects + "{id}/" + ActionUnenroll + "/", e.handleUnenroll},
		{"GET", EndpointSubjects + "{id}/" + ActionMyProgress + "/", e.handleSubjectProgress},

		// resources
		{"GET", EndpointResources, e.handleListResources},
		{"GET", EndpointPurchasedResources, e.handlePurchasedResources},
		{"POST", EndpointPurchaseResource, e.handlePurchaseResource},
		{"POST", EndpointDownloadResource, e.handleDownloadResource},
		{"POST", EndpointResources + "{id}/" + ActionDownload + "/", e.handleDownloadResource},
		{"POST", EndpointResources + "{id}/" + ActionMarkCompleted + "/", e.handleMarkCompleted},

		// exams
		{"GET", EndpointExams, e.handleListExams},
		{"POST", EndpointStartExam, e.handleStartExam},
		{"POST", EndpointSubmitExam, e.handleSubmitExam},

		// tutors
		{"GET", EndpointTutors, e.handleListTutors},
		{"GET", EndpointTutorMe, e.handleGetTutorProfile},
		{"PUT", EndpointTutorMe, e.handleUpdateTutorProfile},
		{"POST", EndpointScheduleTutor, e.handleScheduleTutoring},

		// forums
		{"GET", EndpointForums, e.handleListForums},
		{"POST", EndpointForums, e.handleCreateTopic},
		{"GET", EndpointForums + "{id}/", e.handleGetTopic},
		{"POST", EndpointForums + "{id}/" + ActionReply + "/", e.handleReplyTopic},
		{"POST", EndpointForums + "{id}/" + ActionVote + "/", e.handleVotePost},

		// achievements
		{"GET", EndpointAchievements, e.handleAchievements},
		{"GET", EndpointUserAchievements, e.handleAchievements},

		// notifications & activities
		{"GET", EndpointNotifications, e.handleNotifications},
		{"POST", EndpointMarkNotificationRead, e.handleMarkNotificationRead},
		{"GET", EndpointUpcomingActivities, e.handleUpcomingActivities},

		// admin
		{"GET", EndpointAdminUsers, e.handleAdminListUsers},
		{"PUT", EndpointAdminUsers + "{id}/", e.handleAdminManageUser},
		{"POST", EndpointAdminSubjects, e.handleAdminCreateSubject},
		{"PUT", EndpointAdminSubjects + "{id}/", e.handleAdminUpdateSubject},
		{"DELETE", EndpointAdminSubjects + "{id}/", e.handleAdminDeleteSubject},

		// formularies
		{"GET", EndpointFormularies, e.handleFormularies},

		// community resources; literal sub-paths stay above the {id} routes
		{"GET", EndpointMyCommunityResources, e.handleMyCommunityResources},
		{"GET", EndpointCommunitySearch, e.handleCommunitySearch},
		{"GET", EndpointCommunityResources, e.handleListCommunityResources},
		{"POST", EndpointCommunityResources, e.handleCreateCommunityResource},
		{"PUT", EndpointCommunityResources + "{id}/", e.handleUpdateCommunityResource},
		{"DELETE", EndpointCommunityResources + "{id}/", e.handleDeleteCommunityResource},
		{"POST", EndpointCommunityResources + "{id}/" + ActionDownload + "/", e.handleDownloadCommunityResource},
	}
}
