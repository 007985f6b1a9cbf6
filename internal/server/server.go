package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Auth   *auth.Service
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("❌ %w", err)
	}

	// Identity verification. A missing secret is logged, not fatal: the
	// server still serves /health while every authenticated route fails
	// until the process is restarted with a secret.
	authSvc := auth.NewService(cfg.JWTSecret, cfg.JWTExpiryHours)
	if authSvc.Ready() {
		log.Println("✅ Auth service initialized")
	} else {
		log.Println("⚠️  JWT_SECRET not set. Auth will not work.")
	}

	// Setup Gin
	r := gin.Default()
	r.Use(middleware.ErrorHandler(cfg.IsProduction()))
	r.Use(cors.Default())

	// Initialize repositories
	boardRepo := repository.NewBoardRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardRepo, todoRepo)
	todoHandler := handler.NewTodoHandler(todoRepo, boardRepo)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(authSvc))
	{
		// Board routes
		api.GET("/boards", boardHandler.List)
		api.POST("/boards", boardHandler.Create)
		api.PUT("/boards/:id", boardHandler.Update)
		api.DELETE("/boards/:id", boardHandler.Delete)
		api.GET("/boards/:id/stats", boardHandler.Stats)

		// Todo routes, nested under the board and addressed directly
		api.GET("/boards/:id/todos", todoHandler.List)
		api.POST("/boards/:id/todos", todoHandler.Create)
		api.PUT("/todos/:id", todoHandler.Update)
		api.DELETE("/todos/:id", todoHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Auth:   authSvc,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
