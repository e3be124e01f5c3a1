package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/PrayerArmy/initializers"
	"github.com/PrayerArmy/models"
)

func setupAuthTestDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	return mock, func() {
		initializers.DB = originalDB
		_ = db.Close()
	}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestCheckAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("SECRET", "test-secret")

	adminColumns := []string{"admin_profile_id", "username", "password", "email", "first_name", "last_name", "created_at"}

	tests := []struct {
		name           string
		authHeader     func(t *testing.T) string
		adminExists    bool
		mockLookup     bool
		expectedStatus int
		expectAdmin    bool
	}{
		{
			name: "valid admin token",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.MapClaims{
					"id":   1,
					"exp":  time.Now().Add(time.Hour).Unix(),
					"role": "admin",
				})
			},
			adminExists:    true,
			mockLookup:     true,
			expectedStatus: http.StatusOK,
			expectAdmin:    true,
		},
		{
			name: "valid token without admin role",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.MapClaims{
					"id":  1,
					"exp": time.Now().Add(time.Hour).Unix(),
				})
			},
			adminExists:    true,
			mockLookup:     true,
			expectedStatus: http.StatusOK,
			expectAdmin:    false,
		},
		{
			name:           "missing authorization header",
			authHeader:     func(t *testing.T) string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			authHeader:     func(t *testing.T) string { return "Token abc123" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.MapClaims{
					"id":   1,
					"exp":  time.Now().Add(-time.Hour).Unix(),
					"role": "admin",
				})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "token without expiry claim",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.MapClaims{
					"id":   1,
					"role": "admin",
				})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "token signed with wrong secret",
			authHeader: func(t *testing.T) string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"id":  1,
					"exp": time.Now().Add(time.Hour).Unix(),
				})
				signed, err := token.SignedString([]byte("some-other-secret"))
				if err != nil {
					t.Fatalf("Failed to sign token: %v", err)
				}
				return "Bearer " + signed
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "token for deleted admin",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.MapClaims{
					"id":   999,
					"exp":  time.Now().Add(time.Hour).Unix(),
					"role": "admin",
				})
			},
			adminExists:    false,
			mockLookup:     true,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupAuthTestDB(t)
			defer cleanup()

			if tt.mockLookup {
				rows := sqlmock.NewRows(adminColumns)
				if tt.adminExists {
					rows.AddRow(1, "adminuser", "hash", "admin@example.com", "Admin", "User", time.Now())
				}
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/admins/me", nil)
			if header := tt.authHeader(t); header != "" {
				c.Request.Header.Set("Authorization", header)
			}

			CheckAuth(c)

			if tt.expectedStatus == http.StatusOK {
				assert.False(t, c.IsAborted())

				current, exists := c.Get("currentAdmin")
				assert.True(t, exists)
				admin, ok := current.(models.AdminProfile)
				assert.True(t, ok)
				assert.Equal(t, 1, admin.Admin_Profile_ID)

				isAdmin, exists := c.Get("admin")
				assert.True(t, exists)
				assert.Equal(t, tt.expectAdmin, isAdmin)
			} else {
				assert.True(t, c.IsAborted())
				assert.Equal(t, tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestCheckAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		adminFlag   interface{}
		expectAbort bool
	}{
		{name: "admin session passes", adminFlag: true, expectAbort: false},
		{name: "non-admin session aborts", adminFlag: false, expectAbort: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/fellowships", nil)
			c.Set("admin", tt.adminFlag)

			CheckAdmin(c)

			assert.Equal(t, tt.expectAbort, c.IsAborted())
			if tt.expectAbort {
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			}
		})
	}
}
