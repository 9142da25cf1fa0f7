package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewWithClient(rdb), mr
}

func TestLoadMissingKey(t *testing.T) {
	s, _ := newTestStore(t)

	var dest []string
	found, err := s.Load(context.Background(), "absent", &dest)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatal("missing key must report found=false")
	}
	if dest != nil {
		t.Fatal("dest must stay untouched for missing keys")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	type entry struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}
	in := []entry{{"a", 1}, {"b", 2}}
	if err := s.Save(ctx, KeySubjects, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out []entry
	found, err := s.Load(ctx, KeySubjects, &out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found || len(out) != 2 || out[1].Count != 2 {
		t.Fatalf("round trip mismatch: found=%v out=%+v", found, out)
	}
}

func TestSaveMultiWritesAllKeys(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveMulti(ctx, map[string]any{
		KeySubjects:   []string{"a"},
		KeyUserStates: map[string]int{"u": 1},
	}); err != nil {
		t.Fatalf("save multi: %v", err)
	}

	var subjects []string
	if found, err := s.Load(ctx, KeySubjects, &subjects); err != nil || !found {
		t.Fatalf("subjects missing after SaveMulti: found=%v err=%v", found, err)
	}
	var states map[string]int
	if found, err := s.Load(ctx, KeyUserStates, &states); err != nil || !found {
		t.Fatalf("user states missing after SaveMulti: found=%v err=%v", found, err)
	}
}

func TestStringHelpers(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if got, err := s.LoadString(ctx, KeyAuthToken); err != nil || got != "" {
		t.Fatalf("missing string key: got %q err %v", got, err)
	}
	if err := s.SaveString(ctx, KeyAuthToken, "tok-123"); err != nil {
		t.Fatalf("save string: %v", err)
	}
	if got, _ := s.LoadString(ctx, KeyAuthToken); got != "tok-123" {
		t.Fatalf("load string = %q", got)
	}

	if err := s.Delete(ctx, KeyAuthToken, "never-existed"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.LoadString(ctx, KeyAuthToken); got != "" {
		t.Fatalf("expected deleted key empty, got %q", got)
	}
}

func TestRawReturnsExactBytes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, KeyForums, map[string]string{"k": "v"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := s.Raw(ctx, KeyForums)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if string(raw) != `{"k":"v"}` {
		t.Fatalf("raw = %s", raw)
	}

	missing, err := s.Raw(ctx, "absent")
	if err != nil || missing != nil {
		t.Fatalf("missing raw: %v %v", missing, err)
	}
}

func TestNamespaceKeysCoverEverything(t *testing.T) {
	keys := map[string]bool{}
	for _, k := range NamespaceKeys() {
		keys[k] = true
	}
	for _, k := range []string{
		KeyDemoMode, KeyAuthToken, KeySyncMark,
		KeySubjects, KeyCommunityResources, KeyFormularies, KeyForums,
		KeyUserStates, KeyExtraUsers, KeyAdminUsers, KeyTutorProfiles,
	} {
		if !keys[k] {
			t.Fatalf("reset list misses %s", k)
		}
	}
}
