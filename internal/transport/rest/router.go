package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/contractly/timesheet-management/internal/auth"
	"github.com/contractly/timesheet-management/internal/report"
	"github.com/contractly/timesheet-management/internal/timesheet"
	"github.com/contractly/timesheet-management/internal/transport/middleware"
	"github.com/contractly/timesheet-management/internal/transport/swagger"
	"github.com/contractly/timesheet-management/internal/user"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	timesheetHandler *timesheet.Handler,
	reportHandler *report.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRoleAuthorization(logger)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
		})

		// Everything below requires a valid access token
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Route("/users", func(ur chi.Router) {
				ur.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/", userHandler.CreateUser)
					ar.Get("/", userHandler.ListUsers)
					ar.Get("/{id}", userHandler.GetUser)
					ar.Patch("/{id}", userHandler.UpdateUser)
					ar.Delete("/{id}", userHandler.DeleteUser)
					ar.Get("/{id}/contractors", userHandler.GetContractors)
				})
			})

			pr.Route("/timesheets", func(tr chi.Router) {
				tr.Get("/", timesheetHandler.ListTimesheets)
				tr.Get("/{id}", timesheetHandler.GetTimesheet)

				tr.Group(func(cr chi.Router) {
					cr.Use(rbac.RequireContractor())
					cr.Post("/", timesheetHandler.CreateTimesheet)
					cr.Patch("/{id}", timesheetHandler.UpdateTimesheet)
					cr.Delete("/{id}", timesheetHandler.DeleteTimesheet)
				})

				tr.Group(func(rr chi.Router) {
					rr.Use(rbac.RequireRecruiter())
					rr.Patch("/{id}/approve", timesheetHandler.ApproveTimesheet)
					rr.Patch("/{id}/reject", timesheetHandler.RejectTimesheet)
				})
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin())
				ar.Get("/reports/export", reportHandler.ExportTimesheets)
			})
		})
	})
}
