package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/print-request-api/internal/handler"
	"github.com/noah-isme/print-request-api/internal/middleware"
)

type handlers struct {
	requests  *handler.PrintRequestHandler
	drafts    *handler.DraftHandler
	printable *handler.PrintableHandler
	staff     *handler.StaffHandler
	dashboard *handler.DashboardHandler
	exports   *handler.ExportHandler
	auth      *handler.AuthHandler
	metrics   *handler.MetricsHandler
}

type routeOptions struct {
	apiPrefix  string
	docs       bool
	staffGuard gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, h handlers, opts routeOptions) {
	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)
	if opts.docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.apiPrefix)
	api.Use(middleware.WithResponseMeta())

	api.POST("/auth/staff/login", h.auth.Login)

	requests := api.Group("/requests")
	requests.POST("", h.requests.Submit)
	requests.GET("/:id/printable", h.printable.View)
	requests.GET("/:id/printable.pdf", h.printable.PDF)

	drafts := api.Group("/drafts")
	drafts.POST("", h.drafts.Create)
	drafts.GET("/:id", h.drafts.Get)
	drafts.PATCH("/:id", h.drafts.UpdateHeader)
	drafts.POST("/:id/rows", h.drafts.AddRow)
	drafts.PATCH("/:id/rows/:rowId", h.drafts.UpdateRow)
	drafts.DELETE("/:id/rows/:rowId", h.drafts.RemoveRow)
	drafts.POST("/:id/submit", h.drafts.Submit)

	api.GET("/exports/:token", h.exports.Download)

	staff := api.Group("/staff")
	if opts.staffGuard != nil {
		staff.Use(opts.staffGuard)
	}
	staff.GET("/requests", h.requests.List)
	staff.GET("/requests/:id", h.requests.Get)
	staff.PATCH("/requests/:id", h.staff.Update)
	staff.POST("/requests/:id/photos/:slot", h.staff.UploadPhoto)
	staff.POST("/requests/:id/complete", h.staff.Complete)
	staff.POST("/scan", h.staff.Scan)

	staff.POST("/sessions", h.dashboard.Open)
	staff.GET("/sessions/:sid", h.dashboard.State)
	staff.PUT("/sessions/:sid/search", h.dashboard.Search)
	staff.POST("/sessions/:sid/complete", h.dashboard.Complete)
	staff.DELETE("/sessions/:sid", h.dashboard.Close)

	staff.GET("/export.csv", h.exports.CSV)
	staff.GET("/export.pdf", h.exports.PDF)
	staff.POST("/exports", h.exports.Publish)
}
