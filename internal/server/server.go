package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/harvestplan/backend/config"
	"github.com/pageza/harvestplan/backend/internal/api"
	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"github.com/pageza/harvestplan/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New wires services and routes. A nil redis client keeps suggestion history
// in memory and disables plan rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorHandler(), middleware.CORS(cfg.CORSOrigins))

	now := time.Now
	scorer := produce.NewScorer(produce.ScorerOptions{
		Weights:         cfg.Engine.Weights,
		DiversityWindow: cfg.Engine.DiversityWindow,
	})

	var history service.HistoryStore
	var planLimiter *middleware.RateLimiter
	if redisClient != nil {
		history = service.NewRedisHistoryStore(redisClient, service.DefaultHistoryCap)
		planLimiter = middleware.NewPlanRateLimiter(redisClient, cfg.Engine.PlanRateLimit)
	} else {
		log.Printf("[Server] Redis not configured, using in-memory suggestion history and no rate limiting")
		history = service.NewMemoryHistoryStore(service.DefaultHistoryCap)
	}

	api.RegisterRoutes(router, api.Services{
		Auth:        service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL),
		Inventory:   service.NewInventoryService(db, now),
		Recipes:     service.NewRecipeService(db),
		Suggestions: service.NewSuggestionService(db, scorer, history, cfg.Engine.HistoryRecord, now),
		Plans:       service.NewPlanService(db, scorer, now),
		SchoolMenu:  service.NewSchoolMenuService(db, time.Local),
		Events:      service.NewEventService(db, time.Local),
		PlanLimiter: planLimiter,
	})

	return &Server{
		router: router,
		db:     db,
		redis:  redisClient,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	log.Printf("[Server] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
