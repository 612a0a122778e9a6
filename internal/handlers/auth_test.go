package handlers_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/codes"
	"github.com/dramoir/dramoir-backend/internal/handlers"
	"github.com/dramoir/dramoir-backend/internal/middleware"
	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
	"github.com/dramoir/dramoir-backend/internal/testutil"
)

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	codeMgr := codes.NewManager(db)
	// The mailer is never run in tests; jobs just sit in the buffer
	mailer := services.NewMailer(services.WithSendFunc(func(to []string, subject, body string) error {
		return nil
	}))

	r := gin.New()
	r.POST("/auth/register", handlers.Register(db, codeMgr, mailer))
	r.POST("/auth/verify-email", handlers.VerifyEmail(db, codeMgr))
	r.POST("/auth/login", handlers.Login(db))
	r.POST("/auth/token/refresh", handlers.RefreshToken(db))
	r.POST("/auth/forgot-password", handlers.ForgotPassword(db, codeMgr, mailer))
	r.POST("/auth/reset-password", handlers.ResetPassword(db, codeMgr))

	protected := r.Group("/", middleware.AuthMiddleware())
	protected.GET("/users/profile", handlers.GetProfile(db))

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// storedCode fishes the latest issued code for a user out of the database,
// standing in for reading the email.
func storedCode(t *testing.T, db *gorm.DB, email string, purpose models.CodePurpose) string {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	var record models.OneTimeCode
	require.NoError(t, db.Where("user_id = ? AND purpose = ?", user.ID, purpose).
		Order("created_at DESC").First(&record).Error)
	return record.Code
}

func TestRegisterVerifyLogin(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(t, r, "POST", "/auth/register", gin.H{
		"username": "someone",
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Unverified accounts cannot log in
	w = doJSON(t, r, "POST", "/auth/login", gin.H{
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// A wrong code is rejected with the generic message
	w = doJSON(t, r, "POST", "/auth/verify-email", gin.H{
		"email": "a@x.com",
		"code":  "000000",
	})
	if w.Code != http.StatusBadRequest {
		// The issued code could legitimately be 000000
		code := storedCode(t, db, "a@x.com", models.CodePurposeEmailVerification)
		require.Equal(t, "000000", code)
	}

	code := storedCode(t, db, "a@x.com", models.CodePurposeEmailVerification)
	w = doJSON(t, r, "POST", "/auth/verify-email", gin.H{
		"email": "a@x.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var verifyResp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verifyResp))
	require.NotEmpty(t, verifyResp.Access)
	require.NotEmpty(t, verifyResp.Refresh)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
	require.True(t, user.IsVerified)

	// The code is terminal after consumption
	w = doJSON(t, r, "POST", "/auth/verify-email", gin.H{
		"email": "a@x.com",
		"code":  code,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.True(t, user.IsVerified) // never un-verified

	// Verified accounts log in and get a token pair
	w = doJSON(t, r, "POST", "/auth/login", gin.H{
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	// The access token opens protected routes
	req := httptest.NewRequest("GET", "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Access)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The refresh token does not
	req = httptest.NewRequest("GET", "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Refresh)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// But it mints a fresh access token
	w = doJSON(t, r, "POST", "/auth/token/refresh", gin.H{"refresh": loginResp.Refresh})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newTestRouter(t, db)

	user := models.User{
		Username:   "someone",
		Email:      "a@x.com",
		Password:   "oldpassword",
		IsVerified: true,
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(&user).Error)

	w := doJSON(t, r, "POST", "/auth/forgot-password", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	knownBody := w.Body.String()

	// Unknown addresses get the identical response, and the address never
	// reaches the logs
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	w = doJSON(t, r, "POST", "/auth/forgot-password", gin.H{"email": "nobody@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, knownBody, w.Body.String())
	require.NotContains(t, logBuf.String(), "nobody@x.com")

	code := storedCode(t, db, "a@x.com", models.CodePurposePasswordReset)

	w = doJSON(t, r, "POST", "/auth/reset-password", gin.H{
		"email":       "a@x.com",
		"code":        code,
		"newPassword": "newpassword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does
	w = doJSON(t, r, "POST", "/auth/login", gin.H{
		"email":    "a@x.com",
		"password": "oldpassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/auth/login", gin.H{
		"email":    "a@x.com",
		"password": "newpassword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The consumed code cannot reset again
	w = doJSON(t, r, "POST", "/auth/reset-password", gin.H{
		"email":       "a@x.com",
		"code":        code,
		"newPassword": "anotherpassword",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/auth/login", gin.H{
		"email":    "a@x.com",
		"password": "newpassword",
	})
	require.Equal(t, http.StatusOK, w.Code)
}
