package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/types"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*types.TokenClaims)
	return claims, args.Error(1)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	r.GET("/private", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	v := new(mockValidator)
	v.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID, Email: "a@example.com"}, nil)
	v.On("ValidateToken", "bad").Return(nil, errors.New("token is expired"))

	router := newRouter(AuthMiddleware(v))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"rejected token", "Bearer bad", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRateLimiterWithoutRedisAllowsAll(t *testing.T) {
	rl := NewPlanRateLimiter(nil, 1)
	router := newRouter(rl.RateLimitMiddleware())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("days: %w", apperr.ErrInvalidInput): http.StatusBadRequest,
		apperr.ErrNotFound:                            http.StatusNotFound,
		fmt.Errorf("%w: email", apperr.ErrConflict):    http.StatusConflict,
		apperr.ErrInvalidCredentials:                  http.StatusUnauthorized,
		errors.New("connection refused"):              http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, StatusFor(err), err.Error())
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) { RespondError(c, errors.New("pq: password authentication failed")) })
	r.GET("/bad", func(c *gin.Context) { RespondError(c, fmt.Errorf("%w: days must be positive", apperr.ErrInvalidInput)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid input: days must be positive"}`, w.Body.String())
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
