package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics returns middleware that captures request metrics using the provided service.
// Routes carrying a cohort key are also counted by course and resource.
// Unmatched paths share one label.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)

		if key := c.Param("key"); key != "" {
			metricsSvc.ObserveCohortRequest(courseOf(key), cohortResource(path), status)
		}
	}
}

// courseOf returns the course prefix of a cohort key, or "unknown".
func courseOf(key string) string {
	course, _, _ := strings.Cut(key, "_")
	for _, known := range models.Courses {
		if course == known {
			return course
		}
	}
	return "unknown"
}

// cohortResource names the part of a cohort route that was hit.
func cohortResource(route string) string {
	switch {
	case strings.HasSuffix(route, "/export"):
		return "export"
	case strings.Contains(route, "/outcomes/"):
		return "outcomes"
	case strings.Contains(route, "/sheets"):
		return "sheets"
	case strings.HasSuffix(route, "/admissions"):
		return "admissions"
	default:
		return "cohort"
	}
}
