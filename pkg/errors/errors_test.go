package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(fmt.Errorf("disk full"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Contains(t, appErr.Error(), "disk full")
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load sheet: %w", Clone(ErrCohortNotFound, "cohort Hardware_x_7h not found"))
	assert.True(t, Is(err, ErrCohortNotFound))
	assert.False(t, Is(err, ErrRecordNotFound))
	assert.False(t, Is(nil, ErrCohortNotFound))
}
