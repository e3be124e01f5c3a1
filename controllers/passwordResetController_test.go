package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func resetTokenColumns() []string {
	return []string{"password_reset_tokens_id", "admin_profile_id", "code", "expires_at", "used", "attempts", "created_at"}
}

// Test ForgotPassword - must not reveal whether an email is registered
func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		adminExists    bool
		mockLookup     bool
		expectedStatus int
	}{
		{
			name:           "unknown email still returns generic success",
			body:           `{"email":"nobody@example.com"}`,
			adminExists:    false,
			mockLookup:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid email rejected",
			body:           `{"email":"not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email rejected",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "known email without email service",
			// The token row is stored but sending fails closed.
			body:           `{"email":"admin@example.com"}`,
			adminExists:    true,
			mockLookup:     true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.mockLookup {
				rows := sqlmock.NewRows(adminProfileColumns())
				if tt.adminExists {
					admin := MockAdmin()
					rows.AddRow(admin.Admin_Profile_ID, admin.Username, "hash",
						admin.Email, admin.First_Name, admin.Last_Name, admin.Created_At)
				}
				mock.ExpectQuery("SELECT").WillReturnRows(rows)

				if tt.adminExists {
					mock.ExpectExec("INSERT INTO \"password_reset_tokens\"").
						WillReturnResult(sqlmock.NewResult(1, 1))
				}
			}

			c, w := SetupTestContext()
			c.Request = httptest.NewRequest("POST", "/auth/forgot-password", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			ForgotPassword(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Contains(t, response["message"], "If this email exists")
			}
		})
	}
}

// Test VerifyResetCode - code check with attempt limiting
func TestVerifyResetCode(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		adminExists    bool
		tokenExists    bool
		attempts       int
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "valid code issues temporary token",
			body:           `{"email":"admin@example.com","code":"123456"}`,
			adminExists:    true,
			tokenExists:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong or expired code",
			body:           `{"email":"admin@example.com","code":"654321"}`,
			adminExists:    true,
			tokenExists:    false,
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name:           "unknown email",
			body:           `{"email":"nobody@example.com","code":"123456"}`,
			adminExists:    false,
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name:           "attempts exhausted",
			body:           `{"email":"admin@example.com","code":"123456"}`,
			adminExists:    true,
			tokenExists:    true,
			attempts:       3,
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name:           "code with wrong length rejected",
			body:           `{"email":"admin@example.com","code":"123"}`,
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus != http.StatusBadRequest {
				adminRows := sqlmock.NewRows(adminProfileColumns())
				if tt.adminExists {
					admin := MockAdmin()
					adminRows.AddRow(admin.Admin_Profile_ID, admin.Username, "hash",
						admin.Email, admin.First_Name, admin.Last_Name, admin.Created_At)
				}
				mock.ExpectQuery("SELECT").WillReturnRows(adminRows)

				if tt.adminExists {
					tokenRows := sqlmock.NewRows(resetTokenColumns())
					if tt.tokenExists {
						tokenRows.AddRow(1, 1, "123456", time.Now().Add(10*time.Minute), false, tt.attempts, time.Now())
					}
					mock.ExpectQuery("SELECT").WillReturnRows(tokenRows)

					if tt.tokenExists && tt.attempts < 3 {
						mock.ExpectExec("UPDATE \"password_reset_tokens\"").
							WillReturnResult(sqlmock.NewResult(0, 1))
					}
				}
			}

			c, w := SetupTestContext()
			c.Request = httptest.NewRequest("POST", "/auth/verify-reset-code", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			VerifyResetCode(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.NotEmpty(t, response["token"])
				assert.Equal(t, float64(1), response["adminId"])
			}
		})
	}
}

// Test ResetPassword - final step with the temporary token
func TestResetPassword(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		newPassword    string
		adminExists    bool
		mockQueries    bool
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "successful reset",
			newPassword:    "brand-new-password",
			adminExists:    true,
			mockQueries:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "garbage token rejected",
			token:          "not-a-real-token",
			newPassword:    "brand-new-password",
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name:           "short password rejected",
			token:          "whatever",
			newPassword:    "abc",
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			token := tt.token
			if token == "" {
				var err error
				token, err = createTempToken(1)
				assert.NoError(t, err)
			}

			if tt.mockQueries {
				adminRows := sqlmock.NewRows(adminProfileColumns())
				if tt.adminExists {
					admin := MockAdmin()
					adminRows.AddRow(admin.Admin_Profile_ID, admin.Username, "hash",
						admin.Email, admin.First_Name, admin.Last_Name, admin.Created_At)
				}
				mock.ExpectQuery("SELECT").WillReturnRows(adminRows)

				if tt.adminExists {
					mock.ExpectExec("UPDATE \"admin_profile\"").
						WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectExec("UPDATE \"password_reset_tokens\"").
						WillReturnResult(sqlmock.NewResult(0, 1))
				}
			}

			body, _ := json.Marshal(map[string]string{"token": token, "newPassword": tt.newPassword})

			c, w := SetupTestContext()
			c.Request = httptest.NewRequest("POST", "/auth/reset-password", bytes.NewBuffer(body))
			c.Request.Header.Set("Content-Type", "application/json")

			ResetPassword(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.Contains(t, response["message"], "Password reset successfully")
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Temp tokens round-trip and expire after five minutes.
func TestTempTokenLifecycle(t *testing.T) {
	token, err := createTempToken(42)
	assert.NoError(t, err)

	adminID, valid := validateTempToken(token)
	assert.True(t, valid)
	assert.Equal(t, 42, adminID)

	_, valid = validateTempToken("%%%not-base64%%%")
	assert.False(t, valid)
}
