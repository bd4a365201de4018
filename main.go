package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/microblog/backend/internal/config"
	"github.com/microblog/backend/internal/db"
	"github.com/microblog/backend/internal/handler"
	"github.com/microblog/backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	database := &db.Postgres{Pool: pool}
	if err := database.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	authService, err := service.NewAuthService(database, cfg.Auth)
	if err != nil {
		log.Fatalf("failed to init auth service: %v", err)
	}
	postService := service.NewPostService(database)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)

	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.CustomRecovery(handler.Recovered),
		handler.RequestIDMiddleware(),
		handler.CORSMiddleware(cfg.Server.AllowedOrigins),
	)
	router.NoRoute(handler.NotFound)

	router.GET("/health", handler.Health)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/posts", postHandler.List)

	protected := router.Group("/", handler.AuthMiddleware(authService))
	protected.POST("/posts", postHandler.Create)
	protected.PUT("/posts/:id", postHandler.Update)
	protected.DELETE("/posts/:id", postHandler.Delete)

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
