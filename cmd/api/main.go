package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sumitRND/PresenceBackend/internal/config"
	appHTTP "github.com/sumitRND/PresenceBackend/internal/handler/http"
	"github.com/sumitRND/PresenceBackend/internal/pkg/cron"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
	"github.com/sumitRND/PresenceBackend/internal/pkg/geocode"
	"github.com/sumitRND/PresenceBackend/internal/pkg/jwt"
	"github.com/sumitRND/PresenceBackend/internal/repository/postgresql"
	attendanceService "github.com/sumitRND/PresenceBackend/internal/service/attendance"
	serviceAuth "github.com/sumitRND/PresenceBackend/internal/service/auth"
	calendarService "github.com/sumitRND/PresenceBackend/internal/service/calendar"
	fieldTripService "github.com/sumitRND/PresenceBackend/internal/service/fieldtrip"
	reportService "github.com/sumitRND/PresenceBackend/internal/service/report"
	"github.com/sumitRND/PresenceBackend/internal/service/staffdir"
	workflowService "github.com/sumitRND/PresenceBackend/internal/service/workflow"
	"log/slog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	staffDB1, err := database.NewStaffDirectoryDB(cfg.StaffDB1.URL)
	if err != nil {
		fmt.Println("Error connecting to primary staff database:", err)
		return
	}
	staffDB2, err := database.NewStaffDirectoryDB(cfg.StaffDB2.URL)
	if err != nil {
		fmt.Println("Error connecting to secondary staff database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	fieldTripRepo := postgresql.NewFieldTripRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	dataRequestRepo := postgresql.NewDataRequestRepository(db)
	adjustmentRepo := postgresql.NewModifiedAttendanceRepository(db)
	staffSource1 := postgresql.NewStaffSourceRepository(staffDB1)
	staffSource2 := postgresql.NewStaffSourceRepository(staffDB2)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	geocoder := geocode.NewNominatimClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent)

	adTimeout, err := time.ParseDuration(cfg.ADAuth.Timeout)
	if err != nil {
		adTimeout = 10 * time.Second
	}
	adVerifier := serviceAuth.NewADVerifier(cfg.ADAuth.URL, adTimeout)

	directory := staffdir.NewMergedDirectory(staffSource1, staffSource2, logger)
	attendanceSvc := attendanceService.NewService(attendanceRepo, fieldTripRepo, directory, geocoder, location, logger)
	fieldTripSvc := fieldTripService.NewService(postgresql.NewTransactor(db), fieldTripRepo, attendanceRepo, directory, location, logger)
	calendarSvc := calendarService.NewService(calendarRepo, location)
	reportSvc := reportService.NewService(attendanceRepo, adjustmentRepo, calendarSvc, directory)
	workflowSvc := workflowService.NewService(dataRequestRepo, adjustmentRepo, directory, reportSvc, logger)
	authSvc := serviceAuth.NewService(adVerifier, directory, attendanceRepo, JWTService, cfg.HR.Username, cfg.HR.PasswordHash, logger)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, location)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		JWTService:        JWTService,
		AuthHandler:       appHTTP.NewAuthHandler(authSvc),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attendanceSvc),
		FieldTripHandler:  appHTTP.NewFieldTripHandler(fieldTripSvc),
		CalendarHandler:   appHTTP.NewCalendarHandler(calendarSvc),
		HRHandler:         appHTTP.NewHRHandler(workflowSvc, reportSvc, directory),
		PIHandler:         appHTTP.NewPIHandler(workflowSvc, reportSvc),
		Env:               cfg.App.Env,
		AllowedOrigins:    cfg.App.AllowedOrigins,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		scheduler.Stop()
		_ = server.Close()
	}()

	fmt.Printf("Server running at http://localhost:%d\n", cfg.App.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Println("Server error:", err)
	}
}
