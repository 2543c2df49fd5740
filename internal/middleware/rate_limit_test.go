package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRateLimiterWithRedis(t *testing.T) {
	client := startRedis(t)
	userID := uuid.New()

	rl := NewPlanRateLimiter(client, 2)
	fixed := time.Date(2024, time.November, 18, 12, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/plans/week", func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	}, rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	var codes []int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/plans/week", nil))
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	remaining, reset, err := rl.GetRemainingRequests(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, fixed.Truncate(time.Minute).Add(time.Minute), reset)
}
