package engine

import (
	"context"
	"io"
	"strings"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/models"
)

// handleListCommunityResources returns the public listing: active, approved
// entries only. Healing already happened inside the loader.
func (e *Engine) handleListCommunityResources(ctx context.Context, req *request) (any, error) {
	if err := e.ensureCommunity(ctx); err != nil {
		return nil, err
	}
	out := make([]models.CommunityResource, 0, len(e.community))
	for _, r := range e.community {
		if r.Activo && r.Aprobado {
			out = append(out, r)
		}
	}
	return out, nil
}

// handleMyCommunityResources returns everything the current user uploaded,
// including inactive entries.
func (e *Engine) handleMyCommunityResources(ctx context.Context, req *request) (any, error) {
	if err := e.ensureCommunity(ctx); err != nil {
		return nil, err
	}
	u := e.sessionUser()
	out := make([]models.CommunityResource, 0)
	for _, r := range e.community {
		if r.AutorID == u.ID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (e *Engine) handleCommunitySearch(ctx context.Context, req *request) (any, error) {
	if err := e.ensureCommunity(ctx); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(req.Data.String("q")))
	out := make([]models.CommunityResource, 0)
	for _, r := range e.community {
		if !r.Activo || !r.Aprobado {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(r.Titulo), q) ||
			strings.Contains(strings.ToLower(r.Descripcion), q) ||
			strings.Contains(strings.ToLower(r.CursoTitulo), q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (e *Engine) findCommunityResource(id string) *models.CommunityResource {
	for i := range e.community {
		if e.community[i].ID == id {
			return &e.community[i]
		}
	}
	return nil
}

// handleCreateCommunityResource stores the uploaded file in the blob store
// and records its id on the entry. The author block is a snapshot of the
// session user at creation time.
func (e *Engine) handleCreateCommunityResource(ctx context.Context, req *request) (any, error) {
	if err := e.ensureCommunity(ctx); err != nil {
		return nil, err
	}
	u := e.sessionUser()

	entry := models.CommunityResource{
		ID:             nextID("community"),
		Titulo:         req.Data.String("titulo"),
		Descripcion:    req.Data.String("descripcion"),
		Tipo:           req.Data.String("tipo"),
		ContenidoTexto: req.Data.String("contenido_texto"),
		CursoTitulo:    req.Data.String("curso_titulo"),
		AutorID:        u.ID,
		Autor: models.AuthorRef{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			PhotoURL:  u.PhotoURL,
		},
		FechaCreacion: nowISO(),
		Aprobado:      true,
		Activo:        true,
	}
	if entry.Titulo == "" {
		return Result{Success: false, Message: "El título es obligatorio"}, nil
	}

	if fhs := req.Data.Files("archivo"); len(fhs) > 0 {
		fh := fhs[0]
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		id, err := e.blobs.Put(ctx, data, fh.Filename, fh.Header.Get("Content-Type"))
		if err != nil {
			// No entry without its file.
			e.logger.Error("community file store failed", "error", err)
			return nil, err
		}
		entry.ArchivoDemoID = id
	} else if v := req.Data.String("archivo_url"); v != "" {
		entry.ArchivoURL = v
	}

	e.community = append(e.community, entry)
	if err := e.saveCommunity(ctx); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindCommunity)
	return map[string]any{"success": true, "resource": entry}, nil
}

func (e *Engine) canEditCommunity(r *models.CommunityResource) bool {
	u := e.sessionUser()
	return r.AutorID == u.ID || u.Role == models.RoleAdmin
}

func (e *Engine) handleUpdateCommunityResource(ctx context.Context, req *request) (any, error) {
	if err := e.ensureCommunity(ctx); err != nil {
		return nil, err
	}
	r := e.findCommunityResource(req.Params["id"])
	if r == nil {
		return nil, ErrResourceNotFound
	}
	if !e.canEditCommunity(r) {
		return nil, ErrForbidden
	}

	if v := req.Data.String("titulo"); v != "" {
		r.Titulo = v
	}
	if v := req.Data.String("descripcion"); v != "" {
		r.Descripcion = v
	}
	if v := req.Data.String("tipo"); v != "" {
		r.Tipo = v
	}
	if v := req.Data.String("contenido_texto"); v != "" {
		r.ContenidoTexto = v
	}
	if v, ok := req.Data["activo"]; ok {
		switch b := v.(type) {
		case bool:
			r.Activo = b
		case string:
			r.Activo = b == "true"
		}
	}
	if err := e.saveCommunity(ctx); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindCommunity)
	return map[string]any{"success": true, "resource": *r}, nil
}

// handleDeleteCommunityResource removes the entry and then tries to drop
// its stored file. The blob cleanup is best-effort; a leaked blob is
// harmless, a dangling entry is not.
func (e *Engine) handleDeleteCommunityResource(ctx context.Context, req *request) (any, error) {
	if err := e.ensureCommunity(ctx); err != nil {
		return nil, err
	}
	r := e.findCommunityResource(req.Params["id"])
	if r == nil {
		return nil, ErrResourceNotFound
	}
	if !e.canEditCommunity(r) {
		return nil, ErrForbidden
	}
	blobID := r.ArchivoDemoID

	kept := e.community[:0]
	for _, c := range e.community {
		if c.ID == r.ID {
			continue
		}
		kept = append(kept, c)
	}
	e.community = kept
	if err := e.saveCommunity(ctx); err != nil {
		return nil, err
	}

	if blobID != "" {
		if err := e.blobs.Delete(ctx, blobID); err != nil {
			e.logger.Warn("community file delete failed", "id", blobID, "error", err)
		}
	}

	e.bc.Broadcast(ctx, broadcast.KindCommunity)
	return Result{Success: true}, nil
}

// resolveFileURL picks the downloadable reference: stored blobs win, then
// absolute URLs pass through, then origin-relative paths get the API base
// prefixed.
func (e *Engine) resolveFileURL(r *models.CommunityResource) string {
	if r.ArchivoDemoID != "" {
		return "demo-file://" + r.ArchivoDemoID
	}
	if r.ArchivoURL == "" {
		return ""
	}
	if strings.HasPrefix(r.ArchivoURL, "http://") || strings.HasPrefix(r.ArchivoURL, "https://") {
		return r.ArchivoURL
	}
	return strings.TrimSuffix(e.cfg.APIBaseURL, "/") + r.ArchivoURL
}

func (e *Engine) handleDownloadCommunityResource(ctx context.Context, req *request) (any, error) {
	if err := e.ensureCommunity(ctx); err != nil {
		return nil, err
	}
	r := e.findCommunityResource(req.Params["id"])
	if r == nil {
		return nil, ErrResourceNotFound
	}
	r.Descargas++
	if err := e.saveCommunity(ctx); err != nil {
		return nil, err
	}
	e.bc.Broadcast(ctx, broadcast.KindCommunity)
	return map[string]any{
		"success":   true,
		"url":       e.resolveFileURL(r),
		"descargas": r.Descargas,
	}, nil
}
