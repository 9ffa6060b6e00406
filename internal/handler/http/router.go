package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/sumitRND/PresenceBackend/internal/handler/http/middleware"
	"github.com/sumitRND/PresenceBackend/internal/pkg/jwt"
)

type RouterConfig struct {
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	AttendanceHandler AttendanceHandler
	FieldTripHandler  FieldTripHandler
	CalendarHandler   CalendarHandler
	HRHandler         HRHandler
	PIHandler         PIHandler
	Env               string
	AllowedOrigins    []string
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presence-backend"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-SSO-User"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Post("/hr/login", cfg.AuthHandler.HRLogin)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.FlexibleAuth(cfg.JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", cfg.AttendanceHandler.CheckIn)
				r.Post("/checkout", cfg.AttendanceHandler.CheckOut)
				r.Get("/today/{employeeNumber}", cfg.AttendanceHandler.Today)
				r.Get("/calendar/{employeeNumber}", cfg.AttendanceHandler.Calendar)
			})

			r.Route("/fieldtrips", func(r chi.Router) {
				r.Post("/", cfg.FieldTripHandler.Replace)
				r.Get("/active", cfg.FieldTripHandler.ListActive)
				r.Post("/sweep-expired", cfg.FieldTripHandler.SweepExpired)
				r.Post("/process-attendance", cfg.FieldTripHandler.ProcessAttendance)
				r.Get("/by-username/{username}", cfg.FieldTripHandler.ListByUsername)
				r.Get("/{employeeNumber}", cfg.FieldTripHandler.ListByEmployee)
				r.Put("/{fieldTripKey}", cfg.FieldTripHandler.Update)
				r.Delete("/{fieldTripKey}", cfg.FieldTripHandler.Deactivate)
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", cfg.CalendarHandler.Entries)
				r.Get("/holidays", cfg.CalendarHandler.Holidays)
			})

			r.Route("/pi", func(r chi.Router) {
				r.Get("/users-attendance", cfg.PIHandler.UsersAttendance)
				r.Post("/submit-data", cfg.PIHandler.SubmitData)
				r.Get("/notifications", cfg.PIHandler.Notifications)
				r.Post("/modify-attendance", cfg.PIHandler.ModifyAttendance)
				r.Get("/modified-attendance/{employeeNumber}", cfg.PIHandler.ModifiedAttendanceFor)
				r.Delete("/modified-attendance/{id}", cfg.PIHandler.DeleteModifiedAttendance)
			})

			r.Get("/profile/{username}", cfg.AuthHandler.Profile)

			// HR only. Registered as a group, not a subrouter, because
			// POST /hr/login lives outside the auth stack.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Get("/hr/pis", cfg.HRHandler.ListPIs)
				r.Post("/hr/request-data", cfg.HRHandler.RequestData)
				r.Get("/hr/submission-status", cfg.HRHandler.SubmissionStatus)
				r.Get("/hr/download-report", cfg.HRHandler.DownloadReport)
				r.Get("/hr/pi/{username}/attendance", cfg.HRHandler.PIAttendance)
				r.Get("/hr/pi/{username}/download", cfg.HRHandler.PIDownload)
			})
		})
	})

	return r
}
