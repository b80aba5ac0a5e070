package main

import (
	"log"
	"net/http"

	_ "taskify/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskify/internal/auth"
	"taskify/internal/cache"
	"taskify/internal/config"
	"taskify/internal/db"
	"taskify/internal/handler"
	"taskify/internal/model"
	"taskify/internal/repository"
	"taskify/internal/router"
	"taskify/internal/service"
)

// @title Taskify API
// @version 1.0
// @description Personal task tracker with JWT authentication and rotating refresh tokens.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	refreshTokenService := service.NewRefreshTokenService(refreshTokenRepo)
	authService := service.NewAuthService(userRepo, jwtService, refreshTokenService)
	taskService := service.NewTaskService(taskRepo)
	userService := service.NewUserService(userRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, authHandler, taskHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
