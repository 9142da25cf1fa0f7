package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/estudiapro/demo-api/internal/config"
	"github.com/estudiapro/demo-api/internal/engine"
	"github.com/estudiapro/demo-api/internal/handlers"
	"github.com/estudiapro/demo-api/internal/middleware"
	"github.com/estudiapro/demo-api/internal/storage"
)

func Setup(cfg *config.Config, eng *engine.Engine, store *storage.Store) *gin.Engine {
	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(store))

	rateLimiter := middleware.NewRateLimiter(store.Client())
	proxy := handlers.Proxy(eng)

	// API routes; every one delegates to the engine dispatcher.
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		auth.Use(rateLimiter.RateLimitByIP(20, 300))
		{
			auth.POST("/login/", proxy)
			auth.POST("/register/", proxy)
			auth.POST("/logout/", proxy)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(cfg))
		{
			protected.GET("/auth/profile/", proxy)
			protected.PUT("/users/profile/", proxy)

			protected.GET("/mi-panel/", proxy)
			protected.GET("/mi-progreso/", proxy)

			protected.GET("/cursos/", proxy)
			protected.POST("/cursos/:id/inscribirse/", proxy)
			protected.POST("/cursos/:id/desinscribirse/", proxy)
			protected.GET("/cursos/:id/mi_progreso/", proxy)
			protected.GET("/mis-cursos/", proxy)
			protected.POST("/mis-cursos/inscribir/", proxy)
			protected.PUT("/mis-cursos/fecha-examen/", proxy)

			protected.GET("/recursos/", proxy)
			protected.GET("/recursos/mis-compras/", proxy)
			protected.POST("/recursos/comprar/", proxy)
			protected.POST("/recursos/descargar/", proxy)
			protected.POST("/recursos/:id/descargar/", proxy)
			protected.POST("/recursos/:id/marcar_completado/", proxy)

			protected.GET("/examenes/", proxy)
			protected.POST("/examenes/iniciar/", proxy)
			protected.POST("/examenes/enviar/", proxy)

			protected.GET("/tutores/", proxy)
			protected.GET("/tutores/me/", proxy)
			protected.PUT("/tutores/me/", proxy)
			protected.POST("/tutores/agendar/", proxy)

			protected.GET("/foro/", proxy)
			protected.POST("/foro/", proxy)
			protected.GET("/foro/:id/", proxy)
			protected.POST("/foro/:id/responder/", proxy)
			protected.POST("/foro/:id/votar/", proxy)

			protected.GET("/logros/", proxy)
			protected.GET("/mis-logros/", proxy)
			protected.GET("/notificaciones/", proxy)
			protected.POST("/notificaciones/leer/", proxy)
			protected.GET("/proximas-actividades/", proxy)
			protected.GET("/formularios-estudio/", proxy)

			protected.GET("/recursos-comunidad/", proxy)
			protected.GET("/recursos-comunidad/mis_recursos/", proxy)
			protected.GET("/recursos-comunidad/buscar/", proxy)
			protected.POST("/recursos-comunidad/", proxy)
			protected.PUT("/recursos-comunidad/:id/", proxy)
			protected.DELETE("/recursos-comunidad/:id/", proxy)
			protected.POST("/recursos-comunidad/:id/descargar/", proxy)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(cfg), middleware.AdminRequired())
		{
			admin.GET("/users/", proxy)
			admin.PUT("/users/:id/", proxy)
			admin.POST("/custom/cursos/", proxy)
			admin.PUT("/custom/cursos/:id/", proxy)
			admin.DELETE("/custom/cursos/:id/", proxy)
		}
	}

	return r
}
