package models

// Resource is a premium marketplace entry from the static catalog.
type Resource struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	SubjectID   string  `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Type        string  `json:"type"`
	Price       int     `json:"price"`
	Rating      float64 `json:"rating"`
	Downloads   int     `json:"downloads"`
	Free        bool    `json:"free"`
	Sales       int     `json:"sales,omitempty"`
}

// AuthorRef is a snapshot of the author's profile at creation time, not a
// live foreign key.
type AuthorRef struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"foto_perfil_url,omitempty"`
}

// CommunityResource keeps the real backend's Spanish field names: this shape
// is the wire contract shared with online mode.
type CommunityResource struct {
	ID             string    `json:"id"`
	Titulo         string    `json:"titulo"`
	Descripcion    string    `json:"descripcion"`
	Tipo           string    `json:"tipo"`
	ArchivoURL     string    `json:"archivo_url"`
	ArchivoDemoID  string    `json:"archivo_demo_id,omitempty"`
	ContenidoTexto string    `json:"contenido_texto"`
	Autor          AuthorRef `json:"autor"`
	AutorID        string    `json:"autor_id"`
	CursoTitulo    string    `json:"curso_titulo"`
	FechaCreacion  string    `json:"fecha_creacion"`
	Descargas      int       `json:"descargas"`
	Calificacion   float64   `json:"calificacion_promedio"`
	Aprobado       bool      `json:"aprobado"`
	Activo         bool      `json:"activo"`
}

type Formulary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Type    string `json:"type"`
	URL     string `json:"url"`
	FileID  string `json:"fileId,omitempty"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Date        string `json:"date"`
}
