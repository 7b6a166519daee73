package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, 20, cfg.Enrollment.CohortCapacity)
	assert.Equal(t, 8*7*24*time.Hour, cfg.Enrollment.ProgramLength)
	assert.Equal(t, 3, cfg.Attendance.FailAbsenceLimit)
	assert.Equal(t, 16, cfg.Attendance.CompletePresenceTarget)
	assert.Equal(t, 2, cfg.Attendance.CompleteAbsenceAllowance)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATA_DIR", "/var/lib/attendance")
	t.Setenv("COHORT_CAPACITY", "12")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/attendance", cfg.Storage.DataDir)
	assert.Equal(t, 12, cfg.Enrollment.CohortCapacity)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Hour, parseDuration("2h", time.Minute))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
