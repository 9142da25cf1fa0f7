// Package seed holds the default demo datasets. Every function returns a
// fresh value so callers can mutate their copy without bleeding into later
// loads of the same namespace.
package seed

import "github.com/estudiapro/demo-api/internal/models"

const DefaultPassword = "demo123"

func Subjects() []models.Subject {
	return []models.Subject{
		{
			ID:          "calc-1",
			Title:       "Cálculo Diferencial",
			Description: "Domina límites, derivadas y aplicaciones esenciales para ingeniería.",
			Professor:   "Dra. Sofía Reyes",
			School:      "ESCOM",
			Progress:    68,
			Level:       "Intermedio",
			Temario: []models.SyllabusUnit{
				{Title: "Límites y continuidad"},
				{Title: "Derivadas y reglas principales"},
				{Title: "Aplicaciones de la derivada"},
				{Title: "Optimización y máximos relativos"},
			},
		},
		{
			ID:          "alg-2",
			Title:       "Álgebra Lineal Avanzada",
			Description: "Matrices, espacios vectoriales y diagonalización con casos reales.",
			Professor:   "Mtro. Armando Flores",
			School:      "ESCOM",
			Progress:    55,
			Level:       "Avanzado",
			Temario: []models.SyllabusUnit{
				{Title: "Matrices y determinantes"},
				{Title: "Sistemas de ecuaciones"},
				{Title: "Espacios vectoriales"},
				{Title: "Transformaciones lineales"},
			},
		},
		{
			ID:          "ecu-1",
			Title:       "Ecuaciones Diferenciales",
			Description: "Aprende a modelar sistemas dinámicos con ecuaciones reales.",
			Professor:   "Dra. Julieta Morales",
			School:      "IPN",
			Progress:    32,
			Level:       "Intermedio",
			Temario: []models.SyllabusUnit{
				{Title: "Ecuaciones de primer orden"},
				{Title: "Método de coeficientes indeterminados"},
				{Title: "Transformada de Laplace"},
			},
		},
		{
			ID:          "prob-1",
			Title:       "Probabilidad y Estadística",
			Description: "Distribuciones, inferencia y visualización de datos aplicada.",
			Professor:   "Mtra. Paula Navarro",
			School:      "ESCOM",
			Progress:    40,
			Level:       "Básico",
			Temario: []models.SyllabusUnit{
				{Title: "Combinatoria y conteo"},
				{Title: "Variables aleatorias"},
				{Title: "Distribuciones clásicas"},
				{Title: "Intervalos de confianza"},
			},
		},
	}
}

// EnrolledSubjects returns the demo student's starting enrollments: catalog
// snapshots plus exam dates.
func EnrolledSubjects() []models.EnrolledSubject {
	catalog := Subjects()
	byID := make(map[string]models.Subject, len(catalog))
	for _, s := range catalog {
		byID[s.ID] = s
	}
	return []models.EnrolledSubject{
		{Subject: byID["calc-1"], ExamDate: "2025-09-22"},
		{Subject: byID["alg-2"], ExamDate: "2025-10-15"},
		{Subject: byID["prob-1"], ExamDate: "2025-11-05"},
	}
}

func Resources() []models.Resource {
	return []models.Resource{
		{ID: "res-001", Title: "Guía Premium de Derivadas", Author: "Andrea Ríos", SubjectID: "calc-1", SubjectName: "Cálculo Diferencial", Type: "pdf", Price: 89, Rating: 4.9, Downloads: 245},
		{ID: "res-002", Title: "Banco de Exámenes ESCOM - Álgebra", Author: "Carlos Trejo", SubjectID: "alg-2", SubjectName: "Álgebra Lineal Avanzada", Type: "exam", Price: 129, Rating: 4.8, Downloads: 178},
		{ID: "res-003", Title: "Formulario Visual de Integrales", Author: "Mariana Pineda", SubjectID: "calc-1", SubjectName: "Cálculo Diferencial", Type: "formula", Price: 0, Rating: 4.7, Downloads: 312, Free: true},
		{ID: "res-004", Title: "Plantillas Notion para plan de estudio", Author: "Edgar Díaz", SubjectID: "prob-1", SubjectName: "Probabilidad", Type: "pdf", Price: 59, Rating: 4.5, Downloads: 97},
		{ID: "res-005", Title: "Kit visual para derivadas complicadas", Author: "Ana García", SubjectID: "calc-1", SubjectName: "Cálculo Diferencial", Type: "pdf", Price: 149, Rating: 4.9, Downloads: 210, Sales: 42},
		{ID: "res-006", Title: "Banco premium de integrales por partes", Author: "Ana García", SubjectID: "calc-1", SubjectName: "Cálculo Diferencial", Type: "exam", Price: 189, Rating: 4.8, Downloads: 156, Sales: 35},
	}
}

func PurchasedResourceIDs() []string {
	return []string{"res-001", "res-003"}
}

// PlaceholderFiles is the fixed pool used by the community-resource
// self-healing migration: records without a usable file reference get one of
// these, picked by position.
func PlaceholderFiles() []string {
	return []string{
		"/recursos_comunidad/recurso-integrales.pdf",
		"/recursos_comunidad/recurso-matrices.pdf",
		"/recursos_comunidad/recurso-probabilidad.pdf",
	}
}

func CommunityResources() []models.CommunityResource {
	return []models.CommunityResource{
		{
			ID:            "community-001",
			Titulo:        "Formulario de Integrales (Comunidad)",
			Descripcion:   "Compendio rápido de fórmulas y ejemplos para integrales.",
			Tipo:          "DOCUMENTO",
			ArchivoURL:    "/recursos_comunidad/recurso-integrales.pdf",
			Autor:         models.AuthorRef{ID: "demo-author-1", Username: "andrea", FirstName: "Andrea", LastName: "Ríos"},
			AutorID:       "demo-author-1",
			CursoTitulo:   "Cálculo Diferencial",
			FechaCreacion: "2024-05-23T15:45:00Z",
			Descargas:     312,
			Calificacion:  4.7,
			Aprobado:      true,
			Activo:        true,
		},
		{
			ID:            "community-002",
			Titulo:        "Matrices: resumen de operaciones",
			Descripcion:   "Apuntes con propiedades, determinantes y ejemplos.",
			Tipo:          "DOCUMENTO",
			ArchivoURL:    "/recursos_comunidad/recurso-matrices.pdf",
			Autor:         models.AuthorRef{ID: "demo-author-2", Username: "carlos", FirstName: "Carlos", LastName: "Trejo"},
			AutorID:       "demo-author-2",
			CursoTitulo:   "Álgebra Lineal Avanzada",
			FechaCreacion: "2024-05-20T10:20:00Z",
			Descargas:     178,
			Calificacion:  4.8,
			Aprobado:      true,
			Activo:        true,
		},
		{
			ID:            "community-003",
			Titulo:        "Probabilidad: distribuciones clásicas",
			Descripcion:   "Guía rápida de binomial, geométrica, Poisson y normal.",
			Tipo:          "DOCUMENTO",
			ArchivoURL:    "/recursos_comunidad/recurso-probabilidad.pdf",
			Autor:         models.AuthorRef{ID: "demo-author-3", Username: "ian", FirstName: "Ian", LastName: "Salazar"},
			AutorID:       "demo-author-3",
			CursoTitulo:   "Probabilidad y Estadística",
			FechaCreacion: "2024-05-19T09:10:00Z",
			Descargas:     245,
			Calificacion:  4.6,
			Aprobado:      true,
			Activo:        true,
		},
	}
}

func Formularies() []models.Formulary {
	return []models.Formulary{
		{ID: "form-1", Title: "Tabla de Derivadas", Subject: "Cálculo", Type: "PDF", URL: "/formularios/formulario-derivadas.pdf"},
		{ID: "form-2", Title: "Identidades Trigonométricas", Subject: "Álgebra", Type: "PDF", URL: "/formularios/formulario-trigonometria.pdf"},
		{ID: "form-3", Title: "Formulario de Laplace", Subject: "Ecuaciones Diferenciales", Type: "PDF", URL: "/formularios/formulario-laplace.pdf"},
	}
}

func Exams() []models.Exam {
	return []models.Exam{
		{
			ID:          "exam-derivadas",
			SubjectID:   "calc-1",
			SubjectName: "Cálculo Diferencial",
			Title:       "Simulacro Parcial 1 - Derivadas",
			Duration:    3600,
			Questions: []models.ExamQuestion{
				{ID: "q-1", Text: "Calcula la derivada de $f(x) = 3x^4 - 5x^2 + 2$", Answer: "12x^3-10x", Explanation: "Aplica la regla del poder a cada término.", WolframQuery: "derivative 3x^4-5x^2+2"},
				{ID: "q-2", Text: "Evalúa la integral $\\int_0^1 2x \\; dx$", Answer: "1", Explanation: "La antiderivada de 2x es x^2. Evalúa entre 0 y 1.", WolframQuery: "integrate 2x from 0 to 1"},
				{ID: "q-3", Text: "Resuelve el límite $\\lim_{x \\to 0} \\frac{\\sin(3x)}{x}$", Answer: "3", Explanation: "Usa el límite notable sin(x)/x = 1.", WolframQuery: "limit sin(3x)/x as x->0"},
			},
		},
		{
			ID:          "exam-algebra",
			SubjectID:   "alg-2",
			SubjectName: "Álgebra Lineal Avanzada",
			Title:       "Simulacro Matrices y Determinantes",
			Duration:    2700,
			Questions: []models.ExamQuestion{
				{ID: "alg-q1", Text: "Calcula el determinante de la matriz $$\\begin{vmatrix}2 & 3\\\\1 & 4\\end{vmatrix}$$", Answer: "5", Explanation: "det(A)=ad-bc = (2)(4)-(3)(1).", WolframQuery: "determinant [[2,3],[1,4]]"},
				{ID: "alg-q2", Text: "¿Cuál es el vector propio asociado a $\\lambda=3$ de la matriz $A = \\begin{pmatrix}4 & 1\\\\0 & 3\\end{pmatrix}$?", Answer: "\\begin{pmatrix}0\\\\1\\end{pmatrix}", Explanation: "Resuelve (A-3I)v=0.", WolframQuery: "eigenvectors [[4,1],[0,3]]"},
			},
		},
	}
}

func Tutors() []models.Tutor {
	return []models.Tutor{
		{ID: "tutor-ale", Name: "Alejandra Ruiz", Rating: 4.9, Sessions: 128, Specialties: "Cálculo, Álgebra", Bio: "Coach académica con 6 años ayudando a pasar extraordinarios.", Tariff30: 180, Tariff60: 320},
		{ID: "tutor-ian", Name: "Ian Salazar", Rating: 4.7, Sessions: 86, Specialties: "Probabilidad, Estadística", Bio: "Te ayudo a traducir problemas de datos a pasos simples.", Tariff30: 160, Tariff60: 290},
		{ID: "tutor-rosa", Name: "Rosa Vera", Rating: 4.8, Sessions: 102, Specialties: "Ecuaciones Diferenciales", Bio: "Explico con gráficas interactivas y ejemplos reales.", Tariff30: 200, Tariff60: 340},
	}
}

func Forums() []models.ForumTopic {
	return []models.ForumTopic{
		{
			ID:          "forum-1",
			Title:       "¿Cómo factorizar un polinomio cúbico rápido?",
			SubjectName: "Álgebra Lineal",
			Posts: []models.ForumPost{
				{ID: "post-1", Author: "Carlos T.", Content: "Estoy atascado en la parte donde debo eliminar una raíz repetida.", CreatedAt: "2024-05-23T11:15:00Z", Votes: 2},
				{ID: "post-2", Author: "Ana García (Mentora)", Content: "Utiliza división sintética dos veces, luego factoriza el resultado cuadrático.", CreatedAt: "2024-05-23T12:20:00Z", Votes: 12},
			},
		},
		{
			ID:          "forum-2",
			Title:       "Tips para dominar integrales por partes",
			SubjectName: "Cálculo Diferencial",
			Posts: []models.ForumPost{
				{ID: "post-3", Author: "Daniela Y.", Content: "¿Algún truco para recordar qué elegir como u y dv?", CreatedAt: "2024-05-22T18:10:00Z", Votes: 5},
				{ID: "post-4", Author: "Ian Salazar", Content: "Aplica LIATE y practica con integrales de logaritmos. Arma una tabla rápida.", CreatedAt: "2024-05-22T19:05:00Z", Votes: 8},
			},
		},
		{
			ID:          "forum-3",
			Title:       "¿Cómo iniciar con ecuaciones diferenciales?",
			SubjectName: "Ecuaciones Diferenciales",
			Posts: []models.ForumPost{
				{ID: "post-5", Author: "Sofía", Content: "¿Recomiendan empezar por separables o por factor integrante?", CreatedAt: "2024-05-21T07:45:00Z"},
				{ID: "post-6", Author: "Monitor IA", Content: "Empieza con separables y exactas, después pasa a coeficientes constantes.", CreatedAt: "2024-05-21T08:30:00Z"},
			},
		},
	}
}

func Achievements() []models.Achievement {
	return []models.Achievement{
		{ID: "ach-1", Title: "Primer Sprint", Description: "Completaste tu primera semana estudiando diario.", Icon: "🚀", Date: "2024-05-10"},
		{ID: "ach-2", Title: "Explorador", Description: "Agregaste 3 materias a tu panel.", Icon: "🧭", Date: "2024-05-14"},
		{ID: "ach-3", Title: "SOS Master", Description: "Agendaste 2 tutorías en un mes.", Icon: "🧑‍🏫", Date: "2024-05-18"},
	}
}

func Notifications() []models.Notification {
	return []models.Notification{
		{ID: "notif-1", Title: "Examen de Álgebra en 48h", Message: "Agenda un simulacro corto para validar tu progreso antes del examen de Álgebra.", Type: "alert", Date: "2024-05-24T10:02:00Z"},
		{ID: "notif-2", Title: "Nuevo recurso recomendado", Message: "Andrea Ríos compartió el formulario actualizado de integrales que buscabas.", Type: "info", Date: "2024-05-23T15:45:00Z"},
		{ID: "notif-3", Title: "Racha de estudio activa", Message: "Ya llevas 6 días seguidos cumpliendo tu meta diaria. ¡No rompas la racha!", Type: "success", Read: true, Date: "2024-05-22T08:15:00Z"},
	}
}

// StarterActivities seeds a student's upcoming list; other roles start empty.
func StarterActivities() []models.Activity {
	return []models.Activity{
		{ID: "act-1", Title: "Cálculo - Parcial 1", Date: "2025-09-22", Time: "10:00", Type: "Examen", Origin: models.ActivityOriginManual, SubjectID: "calc-1"},
		{ID: "act-2", Title: "Álgebra Lineal - Quiz 2", Date: "2025-09-26", Time: "14:00", Type: "Quiz", Origin: models.ActivityOriginManual, SubjectID: "alg-2"},
		{ID: "act-3", Title: "Mentoría con Alejandra", Date: "2025-09-27", Time: "09:00", Type: "Tutoría", Origin: models.ActivityOriginManual},
	}
}

func AdminUsers() []models.AdminUser {
	return []models.AdminUser{
		{ID: "usr-001", Name: "Daniela Yáñez", Email: "daniela@estudiapro.com", Role: models.RoleStudent, Verified: true},
		{ID: "usr-002", Name: "Ana García", Email: "ana@estudiapro.com", Role: models.RoleCreator, Verified: true},
		{ID: "usr-003", Name: "Luis Hernández", Email: "luis@estudiapro.com", Role: models.RoleStudent},
		{ID: "usr-004", Name: "María Torres", Email: "maria@estudiapro.com", Role: models.RoleAdmin, Verified: true},
	}
}

// DemoProfiles returns the three built-in identities. The student profile is
// also the default session user before anyone logs in.
func DemoProfiles() []models.User {
	return []models.User{
		{
			ID:                 "demo-1",
			Username:           "estudiante.demo",
			Email:              "demo@estudiapro.com",
			Password:           DefaultPassword,
			FirstName:          "Daniela",
			LastName:           "Yáñez",
			Name:               "Daniela Yáñez",
			Role:               models.RoleStudent,
			Level:              3,
			Points:             820,
			Streak:             6,
			Subjects:           EnrolledSubjects(),
			Notifications:      Notifications(),
			PurchasedResources: PurchasedResourceIDs(),
		},
		{
			ID:        "demo-creator",
			Username:  "creador.demo",
			Email:     "creador@estudiapro.com",
			Password:  DefaultPassword,
			FirstName: "Ana",
			LastName:  "García",
			Name:      "Ana García",
			Role:      models.RoleCreator,
			Level:     5,
			Points:    1500,
			Streak:    12,
			Notifications: []models.Notification{
				{ID: "notif-c1", Title: "Nueva venta", Message: "Joshua compró tu Guía de Derivadas.", Type: "success", Date: "2024-05-24T11:30:00Z"},
				{ID: "notif-c2", Title: "Solicitud de tutoría", Message: "Luisa solicitó una tutoría de Álgebra para mañana.", Type: "alert", Date: "2024-05-24T09:15:00Z"},
			},
			Dashboard: &models.CreatorDashboard{
				Published:      2,
				Rating:         4.7,
				StudentsHelped: 94,
				Tutoring: []models.TutoringSession{
					{ID: "tut-1", Student: "Diego L.", Subject: "Cálculo Diferencial", Date: "25 mayo - 18:00", Duration: "60 min"},
					{ID: "tut-2", Student: "María J.", Subject: "Álgebra Lineal", Date: "27 mayo - 10:00", Duration: "45 min"},
				},
			},
		},
		{
			ID:        "demo-admin",
			Username:  "admin.demo",
			Email:     "admin@estudiapro.com",
			Password:  DefaultPassword,
			FirstName: "Administrador",
			LastName:  "General",
			Name:      "Administrador General",
			Role:      models.RoleAdmin,
			Level:     6,
			Points:    2000,
			Notifications: []models.Notification{
				{ID: "notif-a1", Title: "Nuevo registro", Message: "Se creó la cuenta de creador Ana García.", Type: "info", Read: true, Date: "2024-05-22T10:40:00Z"},
			},
			AdminMetrics: &models.AdminMetrics{Users: 4, Subjects: 4, Resources: 6},
		},
	}
}

// StudentProfile returns the default pre-login session identity.
func StudentProfile() models.User {
	return DemoProfiles()[0]
}
