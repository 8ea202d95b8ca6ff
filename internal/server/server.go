package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/glucotrack/backend/config"
	"github.com/pageza/glucotrack/backend/internal/api"
	"github.com/pageza/glucotrack/backend/internal/middleware"
	"github.com/pageza/glucotrack/backend/internal/service"
)

// Server represents the HTTP server and the service graph behind it.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New assembles the API server from its external resources. redisClient may
// be nil, which disables advice rate limiting. The LLM generator and S3
// backup are optional and switched on by configuration; without them the
// advice endpoints serve canned fallbacks and exports skip the backup upload.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	authService := service.NewAuthService(db, cfg.JWTSecret)
	entryService := service.NewEntryService(db)
	preferenceService := service.NewPreferenceService(db, service.NewUnitCache())

	var completer service.ChatCompleter
	if cfg.LLMAPIKey == "" {
		log.Printf("[Server] No LLM API key configured, advice endpoints serve basic recommendations")
	} else if llm, err := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel); err != nil {
		log.Printf("[Server] LLM generator disabled: %v", err)
	} else {
		completer = llm
	}
	recommendationService := service.NewRecommendationService(completer)

	var backup service.BackupStore
	if s3cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket, cfg.AWSRegion); err != nil {
		log.Printf("[Server] S3 export backups disabled: %v", err)
	} else if s3cfg != nil {
		backup = s3cfg
	}
	exportService := service.NewExportService(entryService, backup)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewAdviceRateLimiter(redisClient)
	} else {
		log.Printf("[Server] Redis not available, advice rate limiting disabled")
	}

	router.GET("/health", api.HealthCheck(db))

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewEntryHandler(entryService, preferenceService, recommendationService, authService).RegisterRoutes(v1)
	api.NewPreferenceHandler(preferenceService).RegisterRoutes(v1)
	api.NewAdviceHandler(recommendationService, entryService, preferenceService, rateLimiter).RegisterRoutes(v1)
	api.NewExportHandler(exportService, authService).RegisterRoutes(v1)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
		db: db,
	}
}

// Router exposes the gin engine so tests can drive requests directly.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves HTTP and blocks until the listener fails or Shutdown is
// called. A shutdown-triggered close is not reported as an error.
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, letting in-flight requests
// finish within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
