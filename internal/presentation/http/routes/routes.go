// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/container"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/handlers"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/middleware"
	"github.com/PuneetGOTO/business-website-sub000/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(container.Logger))
	r.Use(middleware.CORSMiddleware(config.AllowedOrigins))

	// Initialize handlers
	contentHandlers := handlers.NewContentHandlers(container.ContentService, container.Logger, container.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	mediaHandlers := handlers.NewMediaHandlers(container.MediaService, container.Logger, container.PerfTracker)
	pageHandlers := handlers.NewPageHandlers(container.PageService, int64(config.MaxUploadBytes), container.Logger)
	contactHandlers := handlers.NewContactHandlers(container.ContactService, container.Logger)
	systemHandlers := handlers.NewSystemHandlers(container.Logger, container.PerfTracker)
	siteHandlers := handlers.NewSiteHandlers(container.RenderService, container.Settings.SiteRoot, container.Logger)

	requireAuth := middleware.RequireAuth(container.AuthService, container.Logger)
	requireAdmin := middleware.RequireAdmin(container.Logger)

	api := r.Group("/api")
	{
		// Content sections: public reads, admin writes
		api.GET("/content", contentHandlers.GetAllContent)
		api.GET("/content/:type", contentHandlers.GetContent)
		api.PUT("/content/:type", requireAuth, requireAdmin, contentHandlers.PutContent)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/me", requireAuth, authHandlers.GetMe)
		}

		api.POST("/contact", contactHandlers.PostContact)

		mediaGroup := api.Group("/media")
		mediaGroup.Use(requireAuth, requireAdmin)
		{
			mediaGroup.GET("/catalog", mediaHandlers.GetCatalog)
			mediaGroup.GET("/assets", mediaHandlers.GetAssets)
			mediaGroup.POST("/assets", mediaHandlers.PostAsset)
			mediaGroup.DELETE("/assets/:id", mediaHandlers.DeleteAsset)
			mediaGroup.GET("/replacements", mediaHandlers.GetReplacements)
			mediaGroup.PUT("/replacements", mediaHandlers.PutReplacement)
			mediaGroup.DELETE("/replacements", mediaHandlers.DeleteReplacement)
		}

		pages := api.Group("/pages")
		pages.Use(requireAuth, requireAdmin)
		{
			pages.GET("/:filename", pageHandlers.GetPage)
			pages.PUT("/:filename", pageHandlers.PutPage)
		}

		admin := api.Group("/admin")
		admin.Use(requireAuth, requireAdmin)
		{
			admin.GET("/stats", systemHandlers.GetStats)
			admin.GET("/logs/levels", systemHandlers.GetLogLevels)
			admin.PUT("/logs/levels", systemHandlers.SetLogLevel)
			if container.Hub != nil {
				eventHandlers := handlers.NewEventHandlers(container.Hub, config.AllowedOrigins, container.Logger)
				admin.GET("/events", eventHandlers.GetEvents)
			}
		}
	}

	// Everything else is the site itself
	r.NoRoute(siteHandlers.Serve)

	return r
}
