package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Every admin surface must reject unauthenticated requests before any
// handler runs; only the submission form, login, password reset and the
// health check are public.
func TestRouterAuthBoundaries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "health check is public",
			method:         "GET",
			path:           "/ping",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "email smoke check requires a session",
			method:         "POST",
			path:           "/test/email",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "admin provisioning requires a session",
			method:         "POST",
			path:           "/admins",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "request triage requires a session",
			method:         "GET",
			path:           "/requests",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "completion tracking requires a session",
			method:         "POST",
			path:           "/requests/1/completions/1",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			// Distinct client addresses keep the per-IP rate limiter out
			// of the picture.
			req.RemoteAddr = fmt.Sprintf("10.0.0.%d:1234", i+1)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
