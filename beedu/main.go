package main

import (
	"beedu/beedu/config"
	"beedu/beedu/controllers"
	"beedu/beedu/routes"
	"beedu/beedu/services/llm"
	"beedu/beedu/services/rag"
	"beedu/beedu/services/token"
	"beedu/beedu/services/vectorstore"
	"beedu/beedu/sources/psql"
	"beedu/beedu/sources/psql/dao"
	"beedu/beedu/sources/storage"
	"beedu/beedu/utils/logging"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logging.AppLogger.Warn("JWT_SECRET not set, using the development default")
	}
	if cfg.OpenAIAPIKey == "" {
		logging.AppLogger.Warn("OPENAI_API_KEY not set, /chat will return errors until it is")
	}
	if !cfg.DatabaseConfigured() {
		logging.AppLogger.Warn("database not configured, signup/login and history are unavailable")
	}

	// The database handle is lazy: the server boots and serves /chat even
	// while the store is missing or down.
	db := psql.NewDatabase(cfg)
	defer db.Close()

	userDAO := dao.NewUserDAO(db)
	chatDAO := dao.NewChatDAO(db)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	settings, err := rag.LoadSettings(cfg.RAGConfigPath)
	if err != nil {
		logging.ErrorLogger.Fatal("failed to load rag settings", zap.Error(err))
	}

	client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	source := vectorstore.FileSource(cfg.IndexPath)
	if cfg.MinIOEndpoint != "" {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			logging.ErrorLogger.Fatal("minio client error", zap.Error(err))
		}
		source = minioClient.FetchIndex
	}
	store := vectorstore.NewStore(source, client)

	var cache *rag.AnswerCache
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		cache, err = rag.NewAnswerCache(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logging.ErrorLogger.Error("redis unavailable, answer cache disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	authCtrl := controllers.NewAuthController(userDAO, issuer)
	chatCtrl := controllers.NewChatController(store, client, settings, cache, chatDAO)
	healthCtrl := controllers.NewHealthController(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Mount("/auth", routes.AuthRoutes(authCtrl, issuer))
	r.Mount("/chats", routes.ChatsRoutes(chatCtrl, issuer))
	r.Mount("/chat", routes.ChatRoutes(chatCtrl, issuer))
	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/api", routes.StatusRoutes(healthCtrl))
	routes.RegisterUI(r)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
