package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brt-intranet/backend/config"
	"github.com/brt-intranet/backend/internal/announcements"
	"github.com/brt-intranet/backend/internal/credentials"
	"github.com/brt-intranet/backend/internal/downloads"
	"github.com/brt-intranet/backend/internal/mailrelay"
	"github.com/brt-intranet/backend/internal/middleware"
	"github.com/brt-intranet/backend/internal/tickets"
	"github.com/brt-intranet/backend/pkg/response"
)

// handlers groups the feature handlers the router mounts.
type handlers struct {
	announcements *announcements.Handler
	tickets       *tickets.Handler
	downloads     *downloads.Handler
	login         *credentials.Handler
	mail          *mailrelay.Handler
}

// newRouter builds the gin engine. serveUploads mounts the local upload
// directory under the configured prefix.
func newRouter(cfg *config.Config, h handlers, serveUploads bool, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Uploads.MaxMB) << 20
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	if cfg.Metrics {
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	if serveUploads {
		router.Static(cfg.Uploads.URLPrefix, cfg.Uploads.Dir)
	}

	// Download catalog
	router.GET("/descargas/:codigo", h.downloads.Lookup)

	api := router.Group("/api")
	{
		// Announcements
		api.GET("/anuncios/activo", h.announcements.Active)
		api.GET("/anuncios", h.announcements.List)
		api.POST("/anuncios", h.announcements.Create)
		api.PATCH("/anuncios/:id", h.announcements.Patch)

		// Tickets
		api.POST("/requerimientosdb", h.tickets.Create)
		api.GET("/requerimientosdb", h.tickets.List)
		api.GET("/requerimientosdb/:codigo", h.tickets.List)

		// Mail relay
		api.POST("/formulario", h.mail.TicketForm)
		api.POST("/contacto", h.mail.Contact)

		api.GET("/dbw00001", h.downloads.Dump)
		api.POST("/login", h.login.Login)
	}

	return router
}
