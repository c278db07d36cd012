package server

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/obaidurrehman72007/deep-lens/internal/ai"
	"github.com/obaidurrehman72007/deep-lens/internal/auth"
	"github.com/obaidurrehman72007/deep-lens/internal/cache"
	"github.com/obaidurrehman72007/deep-lens/internal/config"
	"github.com/obaidurrehman72007/deep-lens/internal/handler"
	"github.com/obaidurrehman72007/deep-lens/internal/middleware"
	"github.com/obaidurrehman72007/deep-lens/internal/service"
	"github.com/obaidurrehman72007/deep-lens/internal/store"
)

// Server Fiber 서버 래퍼
type Server struct {
	app             *fiber.App
	cfg             *config.Config
	db              *gorm.DB
	logger          *logrus.Logger
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	videoHandler    *handler.VideoHandler
	noteHandler     *handler.NoteHandler
	canvasHandler   *handler.CanvasHandler
	shareHandler    *handler.ShareHandler
	activityHandler *handler.ActivityHandler
	healthHandler   *handler.HealthHandler
	videoMW         *middleware.VideoMiddleware
	jwtManager      *auth.JWTManager
}

// New 새 서버 인스턴스 생성
func New(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Deep Lens API",
		ServerHeader:          "Fiber",
		StrictRouting:         true,
		CaseSensitive:         true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		BodyLimit:             10 * 1024 * 1024, // 10MB, 캔버스 문서 전체 저장 허용
		DisableStartupMessage: false,
	})

	// Auth 초기화
	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)
	googleAuth := auth.NewGoogleAuthenticator(cfg.Auth.GoogleClientID)

	// Redis 캐시 초기화 (선택적)
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		var err error
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("⚠️ Redis initialization failed: %v (share view caching disabled)", err)
			redisClient = nil
		}
	} else {
		log.Println("ℹ️ Redis not configured (share view caching disabled)")
	}

	// 서비스 초기화
	st := store.NewGormStore(db)
	canvasService := service.NewCanvasService(st, logger)
	shareService := service.NewShareService(st, cfg.Share.LinkTTL, logger)
	activityService := service.NewActivityService(st, logger)
	aiClient := ai.NewClient(cfg.AI.BaseURL, cfg.AI.Model)

	return &Server{
		app:             app,
		cfg:             cfg,
		db:              db,
		logger:          logger,
		authHandler:     handler.NewAuthHandler(db, jwtManager, googleAuth, cfg.Auth.SecureCookie),
		userHandler:     handler.NewUserHandler(db),
		videoHandler:    handler.NewVideoHandler(db, activityService, aiClient),
		noteHandler:     handler.NewNoteHandler(db, canvasService, activityService),
		canvasHandler:   handler.NewCanvasHandler(canvasService, activityService, redisClient),
		shareHandler:    handler.NewShareHandler(shareService, activityService, redisClient),
		activityHandler: handler.NewActivityHandler(activityService, canvasService),
		healthHandler:   handler.NewHealthHandler(db, redisClient),
		videoMW:         middleware.NewVideoMiddleware(st),
		jwtManager:      jwtManager,
	}
}

// SetupMiddleware 미들웨어 설정
func (s *Server) SetupMiddleware() {
	// 패닉 복구
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// 요청 ID + 구조화 로깅
	s.app.Use(middleware.RequestID(s.logger))

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORS.AllowOrigins,
		AllowHeaders:     s.cfg.CORS.AllowHeaders,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
}

// SetupRoutes 라우트 설정
func (s *Server) SetupRoutes() {
	// 헬스체크 엔드포인트
	s.app.Get("/health", s.healthHandler.Check)
	s.app.Get("/health/live", s.healthHandler.Liveness)
	s.app.Get("/health/ready", s.healthHandler.Readiness)

	// Rate Limiter 설정 (인증 엔드포인트용 - Brute Force 방지)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,              // 최대 10회
		Expiration: 1 * time.Minute, // 1분당
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() // IP 기반 제한
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	})

	requireAuth := auth.AuthMiddleware(s.jwtManager)
	optionalAuth := auth.OptionalAuthMiddleware(s.jwtManager)

	// Auth 라우트 그룹
	authGroup := s.app.Group("/auth")
	authGroup.Post("/google", authLimiter, s.authHandler.GoogleLogin)
	authGroup.Post("/refresh", authLimiter, s.authHandler.RefreshToken)
	authGroup.Post("/logout", requireAuth, s.authHandler.Logout)
	authGroup.Get("/me", requireAuth, s.authHandler.GetMe)

	// User 설정 라우트
	s.app.Post("/api/settings/key", requireAuth, s.userHandler.SaveAPIKey)

	// Video 라우트 그룹 (인증 필요)
	videoGroup := s.app.Group("/api/videos", requireAuth)
	videoGroup.Post("/", s.videoHandler.AddVideo)
	videoGroup.Get("/", s.videoHandler.GetCards)
	videoGroup.Get("/:videoId", s.videoMW.RequireVideoOwner(), s.videoHandler.GetVideo)
	videoGroup.Delete("/:videoId", s.videoMW.RequireVideoOwner(), s.videoHandler.DeleteCard)
	videoGroup.Post("/:videoId/summarize", s.videoMW.RequireVideoOwner(), s.videoHandler.Summarize)

	// Note 라우트 (소유자 또는 공유 토큰, 접근 판정은 핸들러에서)
	s.app.Get("/api/notes/:videoId", optionalAuth, s.noteHandler.GetNotes)
	s.app.Post("/api/notes/:videoId", optionalAuth, s.noteHandler.AddNote)
	s.app.Put("/api/notes/note/:noteId", optionalAuth, s.noteHandler.UpdateNote)
	s.app.Delete("/api/notes/note/:noteId", optionalAuth, s.noteHandler.DeleteNote)

	// Canvas 라우트 (소유자 또는 공유 토큰)
	s.app.Get("/api/canvas/:videoId", optionalAuth, s.canvasHandler.GetCanvas)
	s.app.Get("/api/canvas/:videoId/frame", optionalAuth, s.canvasHandler.GetFrame)
	s.app.Post("/api/canvas/:videoId/save", optionalAuth, s.canvasHandler.SaveCanvas)

	// 공유 링크 라우트
	s.app.Post("/api/shared/:videoId", requireAuth, s.videoMW.RequireVideoOwner(), s.shareHandler.CreateShareLink)
	s.app.Get("/api/shared-stats", requireAuth, s.shareHandler.GetShareStats)
	s.app.Get("/api/shared/:token", s.shareHandler.GetSharedContent)
	s.app.Get("/api/shared-canvas/:token/:videoId?", s.shareHandler.GetSharedCanvasData)

	// 활동 로그 라우트
	s.app.Get("/api/logs/:videoId", optionalAuth, s.activityHandler.GetVideoLogs)
}

// Start 서버 시작 (Graceful Shutdown 지원)
func (s *Server) Start() error {
	// Graceful Shutdown 설정
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := s.app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Fatalf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Deep Lens API starting on %s", s.cfg.Server.Port)

	return s.app.Listen(s.cfg.Server.Port)
}

// Shutdown 서버 종료
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
