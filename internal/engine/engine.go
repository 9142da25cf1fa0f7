// Package engine emulates the EstudiaPro REST backend against local
// persistent storage. A single Handle call dispatches (path, method, payload)
// through a route table, mutates the affected namespace, writes it back, and
// signals the change broadcaster: the same contract as the real backend,
// minus the network.
//
// Concurrency model: single caller at a time. The engine adds no locking of
// its own, and two sessions mutating the same namespace inside one latency
// window resolve as
// last-write-wins.
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/estudiapro/demo-api/internal/blob"
	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/config"
	"github.com/estudiapro/demo-api/internal/models"
	"github.com/estudiapro/demo-api/internal/seed"
	"github.com/estudiapro/demo-api/internal/storage"
)

type Engine struct {
	cfg      *config.Config
	store    *storage.Store
	blobs    blob.Store
	bc       *broadcast.Broadcaster
	logger   *slog.Logger
	validate *validator.Validate

	routes []route
	misses []RouteMiss

	// Session: the hydrated copy of whoever logged in last. Reset on
	// logout and on demo-mode toggle.
	currentUser *models.User

	// Namespace caches, loaded on demand, written through on mutation.
	subjects       []models.Subject
	subjectsLoaded bool

	community       []models.CommunityResource
	communityLoaded bool

	formularies       []models.Formulary
	formulariesLoaded bool

	forums       []models.ForumTopic
	forumsLoaded bool

	userStates       map[string]*models.UserState
	userStatesLoaded bool

	extraUsers       []models.User
	extraUsersLoaded bool

	adminUsers       []models.AdminUser
	adminUsersLoaded bool

	tutorProfiles       map[string]*models.TutorProfile
	tutorProfilesLoaded bool
}

func New(cfg *config.Config, store *storage.Store, blobs blob.Store, bc *broadcast.Broadcaster, logger *slog.Logger) *Engine {
	e := &Engine{
		cfg:      cfg,
		store:    store,
		blobs:    blobs,
		bc:       bc,
		logger:   logger,
		validate: validator.New(),
	}
	e.routes = e.buildRoutes()
	return e
}

// ResetSession drops the logged-in user and every namespace cache. The next
// access re-reads from storage (or re-seeds). Called on logout and when the
// client façade toggles demo mode.
func (e *Engine) ResetSession() {
	e.currentUser = nil
	e.subjectsLoaded = false
	e.subjects = nil
	e.communityLoaded = false
	e.community = nil
	e.formulariesLoaded = false
	e.formularies = nil
	e.forumsLoaded = false
	e.forums = nil
	e.userStatesLoaded = false
	e.userStates = nil
	e.extraUsersLoaded = false
	e.extraUsers = nil
	e.adminUsersLoaded = false
	e.adminUsers = nil
	e.tutorProfilesLoaded = false
	e.tutorProfiles = nil
}

// sessionUser returns the active identity; before any login that is the demo
// student profile, same as the browser build.
func (e *Engine) sessionUser() *models.User {
	if e.currentUser == nil {
		u := seed.StudentProfile()
		e.currentUser = &u
	}
	return e.currentUser
}

func (e *Engine) pause(ctx context.Context) error {
	timer := time.NewTimer(e.cfg.DemoLatency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ----- namespace loaders -----
//
// ensure* is idempotent: first call populates fully from storage or fully
// from the seed, never a mix; later calls are no-ops until ResetSession.

func (e *Engine) ensureSubjects(ctx context.Context) error {
	if e.subjectsLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeySubjects, &e.subjects)
	if err != nil {
		return err
	}
	if !found {
		e.subjects = seed.Subjects()
		if err := e.store.Save(ctx, storage.KeySubjects, e.subjects); err != nil {
			return err
		}
	}
	e.subjectsLoaded = true
	return nil
}

func (e *Engine) saveSubjects(ctx context.Context) error {
	return e.store.Save(ctx, storage.KeySubjects, e.subjects)
}

// ensureCommunity also runs the self-healing migration: legacy records
// without a usable file reference get a placeholder from a fixed pool,
// picked by position, and the namespace is re-saved. Running it again finds
// nothing to fix.
func (e *Engine) ensureCommunity(ctx context.Context) error {
	if e.communityLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeyCommunityResources, &e.community)
	if err != nil {
		return err
	}
	changed := false
	if !found {
		e.community = seed.CommunityResources()
		changed = true
	}
	pool := seed.PlaceholderFiles()
	for i := range e.community {
		r := &e.community[i]
		if r.ArchivoDemoID == "" && (r.ArchivoURL == "" || r.ArchivoURL == "#") {
			r.ArchivoURL = pool[i%len(pool)]
			changed = true
		}
	}
	if changed {
		if err := e.store.Save(ctx, storage.KeyCommunityResources, e.community); err != nil {
			return err
		}
	}
	e.communityLoaded = true
	return nil
}

func (e *Engine) saveCommunity(ctx context.Context) error {
	return e.store.Save(ctx, storage.KeyCommunityResources, e.community)
}

func (e *Engine) ensureFormularies(ctx context.Context) error {
	if e.formulariesLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeyFormularies, &e.formularies)
	if err != nil {
		return err
	}
	if !found {
		e.formularies = seed.Formularies()
		if err := e.store.Save(ctx, storage.KeyFormularies, e.formularies); err != nil {
			return err
		}
	}
	e.formulariesLoaded = true
	return nil
}

func (e *Engine) ensureForums(ctx context.Context) error {
	if e.forumsLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeyForums, &e.forums)
	if err != nil {
		return err
	}
	if !found {
		e.forums = seed.Forums()
		if err := e.store.Save(ctx, storage.KeyForums, e.forums); err != nil {
			return err
		}
	}
	e.forumsLoaded = true
	return nil
}

func (e *Engine) saveForums(ctx context.Context) error {
	return e.store.Save(ctx, storage.KeyForums, e.forums)
}

func (e *Engine) ensureUserStates(ctx context.Context) error {
	if e.userStatesLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeyUserStates, &e.userStates)
	if err != nil {
		return err
	}
	if !found || e.userStates == nil {
		e.userStates = make(map[string]*models.UserState)
		if err := e.store.Save(ctx, storage.KeyUserStates, e.userStates); err != nil {
			return err
		}
	}
	e.userStatesLoaded = true
	return nil
}

func (e *Engine) ensureExtraUsers(ctx context.Context) error {
	if e.extraUsersLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeyExtraUsers, &e.extraUsers)
	if err != nil {
		return err
	}
	if !found {
		e.extraUsers = nil
	}
	e.extraUsersLoaded = true
	return nil
}

func (e *Engine) saveExtraUsers(ctx context.Context) error {
	return e.store.Save(ctx, storage.KeyExtraUsers, e.extraUsers)
}

func (e *Engine) ensureAdminUsers(ctx context.Context) error {
	if e.adminUsersLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeyAdminUsers, &e.adminUsers)
	if err != nil {
		return err
	}
	if !found {
		e.adminUsers = seed.AdminUsers()
		if err := e.store.Save(ctx, storage.KeyAdminUsers, e.adminUsers); err != nil {
			return err
		}
	}
	e.adminUsersLoaded = true
	return nil
}

func (e *Engine) saveAdminUsers(ctx context.Context) error {
	return e.store.Save(ctx, storage.KeyAdminUsers, e.adminUsers)
}

func (e *Engine) ensureTutorProfiles(ctx context.Context) error {
	if e.tutorProfilesLoaded {
		return nil
	}
	found, err := e.store.Load(ctx, storage.KeyTutorProfiles, &e.tutorProfiles)
	if err != nil {
		return err
	}
	if !found || e.tutorProfiles == nil {
		e.tutorProfiles = make(map[string]*models.TutorProfile)
	}
	e.tutorProfilesLoaded = true
	return nil
}

func (e *Engine) saveTutorProfiles(ctx context.Context) error {
	return e.store.Save(ctx, storage.KeyTutorProfiles, e.tutorProfiles)
}

// SeedAll forces every namespace to exist in storage. The reset tool calls
// this after wiping.
func (e *Engine) SeedAll(ctx context.Context) error {
	for _, ensure := range []func(context.Context) error{
		e.ensureSubjects,
		e.ensureCommunity,
		e.ensureFormularies,
		e.ensureForums,
		e.ensureUserStates,
		e.ensureAdminUsers,
		e.ensureTutorProfiles,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ----- hydration -----

// userKey derives the stable identity key: id, else username, else email.
func userKey(u *models.User) string {
	if u.ID != "" {
		return u.ID
	}
	if u.Username != "" {
		return strings.ToLower(u.Username)
	}
	return strings.ToLower(u.Email)
}

// getOrCreateUserState returns the per-user mutable record, seeding it from
// the profile template on first access. Students get the starter upcoming
// list; other roles start with none.
func (e *Engine) getOrCreateUserState(ctx context.Context, u *models.User) (*models.UserState, error) {
	if err := e.ensureUserStates(ctx); err != nil {
		return nil, err
	}
	key := userKey(u)
	if st, ok := e.userStates[key]; ok {
		return st, nil
	}

	st := &models.UserState{
		Subjects:           deepCopy(u.Subjects),
		Notifications:      deepCopy(u.Notifications),
		PurchasedResources: deepCopy(u.PurchasedResources),
	}
	if st.Subjects == nil {
		st.Subjects = []models.EnrolledSubject{}
	}
	if st.Notifications == nil {
		st.Notifications = []models.Notification{}
	}
	if st.PurchasedResources == nil {
		st.PurchasedResources = []string{}
	}
	if u.Role == models.RoleStudent {
		st.UpcomingActivities = seed.StarterActivities()
	} else {
		st.UpcomingActivities = []models.Activity{}
	}

	e.userStates[key] = st
	if err := e.touchUserState(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// hydrateUser overwrites the user's four mutable view fields with the latest
// persisted state. This is what turns a deserialized profile template into a
// live user.
func (e *Engine) hydrateUser(ctx context.Context, u *models.User) error {
	st, err := e.getOrCreateUserState(ctx, u)
	if err != nil {
		return err
	}
	u.Subjects = deepCopy(st.Subjects)
	u.Notifications = deepCopy(st.Notifications)
	u.PurchasedResources = deepCopy(st.PurchasedResources)
	u.UpcomingActivities = deepCopy(st.UpcomingActivities)
	return nil
}

// touchUserState persists the whole per-user-state map. Must follow every
// mutation reachable through a hydrated user's fields.
func (e *Engine) touchUserState(ctx context.Context) error {
	return e.store.Save(ctx, storage.KeyUserStates, e.userStates)
}

// sessionState is the common "current user's state" lookup for handlers.
func (e *Engine) sessionState(ctx context.Context) (*models.User, *models.UserState, error) {
	u := e.sessionUser()
	st, err := e.getOrCreateUserState(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, st, nil
}

// ----- helpers -----

// deepCopy round-trips through JSON, the same trick the browser build used
// for snapshots. Entities here are plain data with no cycles.
func deepCopy[T any](v T) T {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// nextID keeps the original's prefixed id shape (res-xxxx, forum-xxxx) while
// delegating uniqueness to uuid.
func nextID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
