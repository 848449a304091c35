package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/config"
	"github.com/forumhub/forum-api/internal/domain/auth"
	"github.com/forumhub/forum-api/internal/domain/comment"
	"github.com/forumhub/forum-api/internal/domain/follow"
	"github.com/forumhub/forum-api/internal/domain/like"
	"github.com/forumhub/forum-api/internal/domain/message"
	"github.com/forumhub/forum-api/internal/domain/notification"
	"github.com/forumhub/forum-api/internal/domain/post"
	"github.com/forumhub/forum-api/internal/domain/profile"
	"github.com/forumhub/forum-api/internal/domain/report"
	"github.com/forumhub/forum-api/internal/domain/stats"
	"github.com/forumhub/forum-api/internal/domain/taxonomy"
	"github.com/forumhub/forum-api/internal/domain/user"
	"github.com/forumhub/forum-api/internal/middleware"
	"github.com/forumhub/forum-api/internal/pkg/cache"
	"github.com/forumhub/forum-api/internal/pkg/database"
	"github.com/forumhub/forum-api/internal/pkg/imaging"
	"github.com/forumhub/forum-api/internal/pkg/jwt"
	pkgresponse "github.com/forumhub/forum-api/internal/pkg/response"
	"github.com/forumhub/forum-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Forum API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	cacheStore := cache.NewStore(redis)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file storage")
	}
	avatarProcessor := imaging.NewProcessor(imaging.DefaultAvatarConfig())

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	taxonomyRepo := taxonomy.NewRepository(db)
	postRepo := post.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	likeRepo := like.NewRepository(db)
	followRepo := follow.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	messageRepo := message.NewRepository(db)
	reportRepo := report.NewRepository(db)
	statsRepo := stats.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := notification.NewHub(redis)
	go hub.Run()

	// ---------- Background jobs ----------
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	cleanupJob := notification.NewCleanupJob(notificationRepo, cfg.NotificationRetention)
	go cleanupJob.Start(jobsCtx, 24*time.Hour)

	// View counts accumulate in Redis and land in the posts table
	// every flushEvery hits.
	viewCounter := cache.NewViewCounter(redis, cfg.ViewFlushEvery, func(ctx context.Context, key string, count int64) error {
		postID, err := uuid.Parse(key)
		if err != nil {
			return err
		}
		return postRepo.AddViews(ctx, postID, count)
	})

	// ---------- Services ----------
	notificationService := notification.NewService(notificationRepo, hub)
	authService := auth.NewService(userRepo, jwtService, redis)
	taxonomyService := taxonomy.NewService(taxonomyRepo, cacheStore)
	postService := post.NewService(postRepo, taxonomyService, viewCounter, notificationService)
	commentService := comment.NewService(commentRepo, postRepo, notificationService)
	likeService := like.NewService(likeRepo, postRepo, commentRepo, userRepo, notificationService)
	followService := follow.NewService(followRepo, userRepo, notificationService)
	statsService := stats.NewService(statsRepo, postRepo, commentRepo, followRepo, cacheStore)
	profileService := profile.NewService(userRepo, statsService, notificationService, store, avatarProcessor)
	messageService := message.NewService(messageRepo, userRepo, notificationService)
	reportService := report.NewService(reportRepo, postRepo, commentRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService)
	taxonomyHandler := taxonomy.NewHandler(taxonomyService)
	postHandler := post.NewHandler(postService)
	commentHandler := comment.NewHandler(commentService)
	likeHandler := like.NewHandler(likeService)
	followHandler := follow.NewHandler(followService)
	notificationHandler := notification.NewHandler(notificationService)
	wsHandler := notification.NewWSHandler(notificationService, hub, cfg.AllowedOrigins)
	messageHandler := message.NewHandler(messageService)
	reportHandler := report.NewHandler(reportService)
	statsHandler := stats.NewHandler(statsService)

	// ---------- Middleware ----------
	authMiddleware := middleware.Auth(jwtService, profileService)
	optionalAuth := middleware.OptionalAuth(jwtService)
	rateLimiter := middleware.NewRateLimiter(redis, cfg.RateLimitRequests, cfg.RateLimitWindow)
	rateLimit := rateLimiter.Limit

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws/notifications", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(wsHandler.Serve)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))

		usersRouter := profileHandler.Routes(authMiddleware, optionalAuth)
		followHandler.Routes(usersRouter, authMiddleware)
		r.Mount("/users", usersRouter)

		r.Mount("/profile", profileHandler.SelfRoutes(authMiddleware))

		postsRouter := postHandler.Routes(authMiddleware, optionalAuth, rateLimit)
		postsRouter.Mount("/{id}/comments", commentHandler.PostRoutes(authMiddleware, optionalAuth, rateLimit))
		likeHandler.PostRoutes(postsRouter, authMiddleware, rateLimit)
		r.Mount("/posts", postsRouter)

		commentsRouter := commentHandler.Routes(authMiddleware, rateLimit)
		likeHandler.CommentRoutes(commentsRouter, authMiddleware, rateLimit)
		r.Mount("/comments", commentsRouter)

		r.Mount("/categories", taxonomyHandler.CategoryRoutes(authMiddleware))
		r.Mount("/tags", taxonomyHandler.TagRoutes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))
		r.Mount("/messages", messageHandler.Routes(authMiddleware, rateLimit))
		r.Mount("/reports", reportHandler.Routes(authMiddleware, rateLimit))
		r.Mount("/stats", statsHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	stopJobs()

	if err := viewCounter.FlushAll(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush pending view counts")
	}

	hub.Shutdown()

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// newStorage picks S3 when configured, local disk otherwise
func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		return storage.NewS3Storage(storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return storage.NewLocalStorage(cfg.LocalStoragePath, "/uploads")
}
