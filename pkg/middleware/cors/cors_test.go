package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(allowed []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(allowed))
	r.Any("/cohorts", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, "/cohorts", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	w := serve([]string{"http://school.test/"}, http.MethodGet, "http://school.test")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://school.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	w := serve([]string{"http://school.test"}, http.MethodGet, "http://evil.test")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	w := serve(nil, http.MethodOptions, "http://any.test")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://any.test", w.Header().Get("Access-Control-Allow-Origin"))
}
