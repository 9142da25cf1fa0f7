package engine

import (
	"context"
	"testing"

	"github.com/estudiapro/demo-api/internal/models"
)

func TestForumListingIsSummaries(t *testing.T) {
	e, _ := newTestEngine(t)

	out, err := e.Handle(context.Background(), EndpointForums, "GET", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	list := out.([]models.ForumSummary)
	if len(list) != 3 {
		t.Fatalf("expected 3 seeded topics, got %d", len(list))
	}
	for _, s := range list {
		if s.PostCount == 0 || s.LastActivity == "" {
			t.Fatalf("summary missing derived fields: %+v", s)
		}
	}
}

func TestGetTopicCountsView(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		out, err := e.Handle(ctx, EndpointForums+"forum-1/", "GET", nil)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		topic := out.(models.ForumTopic)
		if topic.Views != i {
			t.Fatalf("views = %d after %d reads", topic.Views, i)
		}
	}

	if _, err := e.Handle(ctx, EndpointForums+"nope/", "GET", nil); err != ErrTopicNotFound {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestCreateTopicAndReply(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	loginAs(t, e, "demo@estudiapro.com")

	created, err := e.Handle(ctx, EndpointForums, "POST", map[string]any{
		"title":        "Duda sobre series",
		"subject_name": "Cálculo Diferencial",
		"content":      "¿Cómo sé si converge?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	topic := created.(map[string]any)["topic"].(models.ForumTopic)
	if len(topic.Posts) != 1 || topic.Posts[0].Author != "Daniela Yáñez" {
		t.Fatalf("expected opening post by session user, got %+v", topic.Posts)
	}

	reply, err := e.Handle(ctx, EndpointForums+topic.ID+"/"+ActionReply+"/", "POST", map[string]any{
		"content": "Prueba el criterio de la razón.",
	})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	post := reply.(map[string]any)["post"].(models.ForumPost)
	if post.Content != "Prueba el criterio de la razón." {
		t.Fatalf("unexpected reply %+v", post)
	}

	// Empty replies are a soft failure, not an error.
	out, err := e.Handle(ctx, EndpointForums+topic.ID+"/"+ActionReply+"/", "POST", map[string]any{"content": "   "})
	if err != nil {
		t.Fatalf("empty reply: %v", err)
	}
	if res, ok := out.(Result); !ok || res.Success {
		t.Fatalf("expected soft rejection of empty reply, got %+v", out)
	}
}

func TestVotePost(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	vote := func(direction string) int {
		out, err := e.Handle(ctx, EndpointForums+"forum-3/"+ActionVote+"/", "POST", map[string]any{
			"post_id":   "post-5",
			"direction": direction,
		})
		if err != nil {
			t.Fatalf("vote %s: %v", direction, err)
		}
		return out.(map[string]any)["votes"].(int)
	}

	if got := vote("UP"); got != 1 {
		t.Fatalf("votes after UP = %d", got)
	}
	if got := vote("DOWN"); got != 0 {
		t.Fatalf("votes after DOWN = %d", got)
	}
	// post-5 started at zero; a second DOWN must not go negative.
	if got := vote("DOWN"); got != 0 {
		t.Fatalf("votes must clamp at zero, got %d", got)
	}

	if _, err := e.Handle(ctx, EndpointForums+"forum-3/"+ActionVote+"/", "POST", map[string]any{
		"post_id":   "ghost",
		"direction": "UP",
	}); err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
