package engine

import (
	"context"
	"strings"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/models"
)

func (e *Engine) handleListForums(ctx context.Context, req *request) (any, error) {
	if err := e.ensureForums(ctx); err != nil {
		return nil, err
	}
	out := make([]models.ForumSummary, 0, len(e.forums))
	for i := range e.forums {
		out = append(out, e.forums[i].Summary())
	}
	return out, nil
}

func (e *Engine) findTopic(id string) *models.ForumTopic {
	for i := range e.forums {
		if e.forums[i].ID == id {
			return &e.forums[i]
		}
	}
	return nil
}

func (e *Engine) handleCreateTopic(ctx context.Context, req *request) (any, error) {
	title := strings.TrimSpace(req.Data.String("title"))
	content := strings.TrimSpace(req.Data.String("content"))
	if title == "" {
		return Result{Success: false, Message: "El título no puede estar vacío"}, nil
	}
	if err := e.ensureForums(ctx); err != nil {
		return nil, err
	}

	u := e.sessionUser()
	topic := models.ForumTopic{
		ID:          nextID("forum"),
		Title:       title,
		SubjectName: req.Data.String("subject_name"),
	}
	if content != "" {
		topic.Posts = append(topic.Posts, models.ForumPost{
			ID:        nextID("post"),
			Author:    models.FormatUser(u).Name,
			Content:   content,
			CreatedAt: nowISO(),
		})
	}
	e.forums = append(e.forums, topic)
	if err := e.saveForums(ctx); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindForums)
	return map[string]any{"success": true, "topic": topic}, nil
}

// handleGetTopic returns the full thread and counts the view. The counter
// write persists before the copy is returned.
func (e *Engine) handleGetTopic(ctx context.Context, req *request) (any, error) {
	if err := e.ensureForums(ctx); err != nil {
		return nil, err
	}
	topic := e.findTopic(req.Params["id"])
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	topic.Views++
	if err := e.saveForums(ctx); err != nil {
		return nil, err
	}
	e.bc.Broadcast(ctx, broadcast.KindForums)
	return deepCopy(*topic), nil
}

func (e *Engine) handleReplyTopic(ctx context.Context, req *request) (any, error) {
	content := strings.TrimSpace(req.Data.String("content"))
	if content == "" {
		return Result{Success: false, Message: "La respuesta no puede estar vacía"}, nil
	}
	if err := e.ensureForums(ctx); err != nil {
		return nil, err
	}
	topic := e.findTopic(req.Params["id"])
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	u := e.sessionUser()
	post := models.ForumPost{
		ID:        nextID("post"),
		Author:    models.FormatUser(u).Name,
		Content:   content,
		CreatedAt: nowISO(),
	}
	topic.Posts = append(topic.Posts, post)
	if err := e.saveForums(ctx); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindForums)
	return map[string]any{"success": true, "post": post}, nil
}

// handleVotePost applies an UP or DOWN vote to one post of the topic. Vote
// counts never go below zero.
func (e *Engine) handleVotePost(ctx context.Context, req *request) (any, error) {
	if err := e.ensureForums(ctx); err != nil {
		return nil, err
	}
	topic := e.findTopic(req.Params["id"])
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	postID := req.Data.String("post_id")
	direction := strings.ToUpper(req.Data.String("direction"))
	for i := range topic.Posts {
		p := &topic.Posts[i]
		if p.ID != postID {
			continue
		}
		switch direction {
		case "UP":
			p.Votes++
		case "DOWN":
			if p.Votes > 0 {
				p.Votes--
			}
		default:
			return Result{Success: false, Message: "Voto inválido"}, nil
		}
		if err := e.saveForums(ctx); err != nil {
			return nil, err
		}
		e.bc.Broadcast(ctx, broadcast.KindForums)
		return map[string]any{"success": true, "votes": p.Votes}, nil
	}
	return nil, ErrPostNotFound
}
