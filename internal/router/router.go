package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-attendance/internal/handler"
	"github.com/noah-isme/cohort-attendance/internal/middleware"
	"github.com/noah-isme/cohort-attendance/internal/service"
	"github.com/noah-isme/cohort-attendance/pkg/config"
	"github.com/noah-isme/cohort-attendance/pkg/logger"
	corsmiddleware "github.com/noah-isme/cohort-attendance/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/cohort-attendance/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Enrollment *handler.EnrollmentHandler
	Cohort     *handler.CohortHandler
	Attendance *handler.AttendanceHandler
	Schedule   *handler.ScheduleHandler
	Metrics    *handler.MetricsHandler
}

// Setup builds the Gin engine with global middleware and all routes.
func Setup(cfg *config.Config, h Handlers, metricsSvc *service.MetricsService, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		enrollments := api.Group("/enrollments")
		{
			enrollments.POST("", h.Enrollment.Register)
			enrollments.GET("", h.Enrollment.List)
		}

		api.GET("/schedule/dates", h.Schedule.ClassDates)

		cohorts := api.Group("/cohorts")
		{
			cohorts.GET("", h.Cohort.List)
			cohorts.GET("/:key", h.Cohort.Get)
			cohorts.PUT("/:key", h.Cohort.Replace)
			cohorts.DELETE("/:key", h.Cohort.Delete)
			cohorts.POST("/:key/admissions", h.Cohort.Admit)

			sheets := cohorts.Group("/:key/sheets")
			{
				sheets.POST("", h.Attendance.Generate)
				sheets.GET("", h.Attendance.List)
				sheets.GET("/:period", h.Attendance.Get)
				sheets.PUT("/:period", h.Attendance.Save)
				sheets.DELETE("/:period", h.Attendance.Delete)
				sheets.GET("/:period/export", h.Attendance.Export)
				sheets.GET("/:period/outcomes/:kind", h.Attendance.Outcomes)
				sheets.PUT("/:period/outcomes/:kind", h.Attendance.ReplaceOutcomes)
				sheets.GET("/:period/outcomes/:kind/export", h.Attendance.ExportOutcomes)
			}
		}
	}

	return r
}
