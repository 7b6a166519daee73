package main

import (
	"fmt"
	"log"

	_ "github.com/noah-isme/cohort-attendance/api/swagger"
	"github.com/noah-isme/cohort-attendance/internal/handler"
	"github.com/noah-isme/cohort-attendance/internal/repository"
	"github.com/noah-isme/cohort-attendance/internal/router"
	"github.com/noah-isme/cohort-attendance/internal/service"
	"github.com/noah-isme/cohort-attendance/pkg/config"
	"github.com/noah-isme/cohort-attendance/pkg/logger"
	"github.com/noah-isme/cohort-attendance/pkg/storage"
)

// @title Cohort Attendance API
// @version 1.0.0
// @description Cohort enrollment and monthly attendance tracking over CSV files
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	files, err := storage.NewLocalStorage(cfg.Storage.DataDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open data directory", "dir", cfg.Storage.DataDir, "error", err)
	}

	store := repository.NewFileStore(files)
	roster := repository.NewRosterRepository(store)
	sheets := repository.NewSheetRepository(store)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validate := service.NewValidator()
	enrollmentPolicy := service.EnrollmentPolicy{
		Capacity:      cfg.Enrollment.CohortCapacity,
		ProgramLength: cfg.Enrollment.ProgramLength,
		DefaultCity:   cfg.Enrollment.DefaultCity,
	}
	attendancePolicy := service.AttendancePolicy{
		FailAbsenceLimit:         cfg.Attendance.FailAbsenceLimit,
		CompletePresenceTarget:   cfg.Attendance.CompletePresenceTarget,
		CompleteAbsenceAllowance: cfg.Attendance.CompleteAbsenceAllowance,
	}

	enrollmentSvc := service.NewEnrollmentService(roster, enrollmentPolicy, validate, metricsSvc, logr)
	cohortSvc := service.NewCohortService(roster, enrollmentPolicy, validate, logr)
	attendanceSvc := service.NewAttendanceService(sheets, roster, attendancePolicy, validate, metricsSvc, logr)
	exportSvc := service.NewExportService(sheets, logr, nil, nil, nil)

	r := router.Setup(cfg, router.Handlers{
		Enrollment: handler.NewEnrollmentHandler(enrollmentSvc),
		Cohort:     handler.NewCohortHandler(cohortSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc, exportSvc),
		Schedule:   handler.NewScheduleHandler(service.NewScheduleService()),
		Metrics:    handler.NewMetricsHandler(metricsSvc, files.Ping),
	}, metricsSvc, logr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "data_dir", files.Path(""))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
