package engine

// Logical endpoint paths, grouped by domain. This table is the wire contract
// between the client façade and the router, and must stay in lockstep with
// the real backend's route naming for online mode to work.
const (
	EndpointLogin    = "/auth/login/"
	EndpointRegister = "/auth/register/"
	EndpointLogout   = "/auth/logout/"
	EndpointProfile  = "/auth/profile/"

	EndpointUpdateProfile = "/users/profile/"
	EndpointDashboard     = "/mi-panel/"
	EndpointProgress      = "/mi-progreso/"

	EndpointSubjects      = "/cursos/"
	EndpointUserSubjects  = "/mis-cursos/"
	EndpointEnrollSubject = "/mis-cursos/inscribir/"
	EndpointExamDate      = "/mis-cursos/fecha-examen/"

	EndpointResources          = "/recursos/"
	EndpointPurchasedResources = "/recursos/mis-compras/"
	EndpointPurchaseResource   = "/recursos/comprar/"
	EndpointDownloadResource   = "/recursos/descargar/"

	EndpointExams      = "/examenes/"
	EndpointStartExam  = "/examenes/iniciar/"
	EndpointSubmitExam = "/examenes/enviar/"

	EndpointTutors        = "/tutores/"
	EndpointTutorMe       = "/tutores/me/"
	EndpointScheduleTutor = "/tutores/agendar/"

	EndpointForums = "/foro/"

	EndpointAchievements     = "/logros/"
	EndpointUserAchievements = "/mis-logros/"

	EndpointNotifications        = "/notificaciones/"
	EndpointMarkNotificationRead = "/notificaciones/leer/"

	EndpointUpcomingActivities = "/proximas-actividades/"

	EndpointAdminUsers    = "/admin/users/"
	EndpointAdminSubjects = "/admin/custom/cursos/"

	EndpointFormularies = "/formularios-estudio/"

	EndpointCommunityResources   = "/recursos-comunidad/"
	EndpointMyCommunityResources = "/recursos-comunidad/mis_recursos/"
	EndpointCommunitySearch      = "/recursos-comunidad/buscar/"
)

// Templated action suffixes on detail routes.
const (
	ActionEnroll        = "inscribirse"
	ActionUnenroll      = "desinscribirse"
	ActionMyProgress    = "mi_progreso"
	ActionMarkCompleted = "marcar_completado"
	ActionDownload      = "descargar"
	ActionVote          = "votar"
	ActionReply         = "responder"
)
