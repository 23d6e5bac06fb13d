package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	adminget "steelestim/http-server/admin/get"
	adminsave "steelestim/http-server/admin/save"
	adminupdate "steelestim/http-server/admin/update"
	estimateitem "steelestim/http-server/estimate-item"
	estimaterouting "steelestim/http-server/estimate-routing"
	generateexcel "steelestim/http-server/generate-report/generate-excel"
	seqallocate "steelestim/http-server/sequence/allocate"
	seqpreview "steelestim/http-server/sequence/preview"
	"steelestim/http-server/worksheet/recalc"
	"steelestim/internal/config"
	"steelestim/internal/middleware/auth"
	"steelestim/internal/service/estimate"
	"steelestim/internal/service/report"
	"steelestim/internal/service/sequence"
	"steelestim/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, estimateService *estimate.EstimateService, sequenceGen *sequence.Generator, reportService *report.ReportService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Pure item estimation, nothing persisted
	router.Post("/api/estimate/processing-item", estimateitem.CalculateProcessingItem(log))
	router.Post("/api/estimate/welding-item", estimateitem.CalculateWeldingItem(log))

	// Routing operations
	router.Post("/api/estimate/routing-operation", estimaterouting.EstimateOperation(log, storage))
	router.Post("/api/estimate/dependency", estimaterouting.ApplyDependency(log))
	router.Post("/api/estimate/routing-chain", estimaterouting.ValidateChain(log))
	router.Get("/api/estimate/routing-template/{id}", estimaterouting.EstimateTemplate(log, storage))

	// Rollups with write-back
	router.Post("/api/worksheets/{id}/recalculate", recalc.RecalculateWorksheet(log, estimateService))
	router.Post("/api/packages/{id}/recalculate", recalc.RecalculatePackage(log, estimateService))
	router.Post("/api/processing-items/{id}/work-center-times/recalculate", recalc.RecalculateWorkCenterTimes(log, estimateService))

	// Number series
	router.Get("/api/sequence/preview", seqpreview.PreviewNumber(log, sequenceGen))
	router.Post("/api/sequence/allocate", seqallocate.AllocateNumber(log, sequenceGen))

	// Excel export
	router.Get("/api/report/excel", generateexcel.GenerateReportExcel(log, reportService))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/series", adminget.GetSeriesAdmin(log, storage))
	adminRouter.Post("/series", adminsave.ConfigureSeriesAdmin(log, storage))
	adminRouter.Post("/series/init", adminsave.InitSeriesAdmin(log, storage))
	adminRouter.Put("/series/reset", adminupdate.ResetSeriesAdmin(log, storage))
	adminRouter.Get("/work-centers", adminget.GetWorkCentersAdmin(log, storage))
	adminRouter.Put("/work-centers/rate", adminupdate.UpdateWorkCenterAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
