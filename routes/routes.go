package routes

import (
	"eventpro-backend/config"
	"eventpro-backend/controllers"
	"eventpro-backend/middleware"
	"eventpro-backend/monitoring"
	"eventpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg config.Config, h *controllers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())
	r.Use(middleware.PrometheusMetrics())
	if cfg.SentryDSN != "" {
		r.Use(middleware.SentryMiddleware())
	}
	r.Use(middleware.ErrorHandler())

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))
	r.GET("/home", h.GetHome)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(cfg.JWTSecret), h.SyncIdentity())
	{
		api.GET("/me", h.Me)
		api.GET("/dashboard", h.GetDashboardOverview)
		api.GET("/reports", h.GetReportAnalytics)

		clients := api.Group("/clients")
		{
			clients.GET("", h.ListClients)
			clients.POST("", h.CreateClient)
			clients.GET("/:id", h.GetClient)
			clients.PUT("/:id", h.UpdateClient)
			clients.DELETE("/:id", h.DeleteClient)
		}

		services := api.Group("/services")
		{
			services.GET("", h.ListServices)
			services.POST("", h.CreateService)
			services.GET("/:id", h.GetService)
			services.PUT("/:id", h.UpdateService)
			services.DELETE("/:id", h.DeleteService)
		}

		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.POST("", h.CreateEvent)
			events.GET("/:id", h.GetEvent)
			events.PUT("/:id", h.UpdateEvent)
			events.DELETE("/:id", h.DeleteEvent)
			events.PUT("/:id/status", h.SetEventStatus)
			events.POST("/:id/services", h.BookService)
			events.DELETE("/:id/services/:bookingId", h.RemoveBooking)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.ListTasks)
			tasks.POST("", h.CreateTask)
			tasks.GET("/:id", h.GetTask)
			tasks.PUT("/:id", h.UpdateTask)
			tasks.DELETE("/:id", h.DeleteTask)
			tasks.POST("/:id/complete", h.CompleteTask)
			tasks.POST("/:id/reopen", h.ReopenTask)
			tasks.GET("/:id/reminders", h.TaskReminders)
		}

		users := api.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.DELETE("/:id", h.DeleteUser)
		}

		api.GET("/search/clients", h.SearchClients)
	}

	return r
}
