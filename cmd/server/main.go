package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"libraryapi/internal/cache"
	"libraryapi/internal/config"
	"libraryapi/internal/db"
	"libraryapi/internal/handler"
	"libraryapi/internal/repository"
	"libraryapi/internal/router"
	"libraryapi/internal/service"
)

// @title Library API
// @version 1.0
// @description Library management API for books and users.
// @host localhost:5000
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Open(cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Schema changes normally run through `libraryctl migrate`.
	if cfg.AutoMigrate {
		log.Println("AUTO_MIGRATE=true detected, migrating schema...")
		if err := db.Migrate(gormDB); err != nil {
			log.Fatalf("%v", err)
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	if cacheClient != nil {
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Printf("Warning: redis unreachable, serving without cache: %v", err)
		}
		defer cacheClient.Close()
	}

	// Initialize repositories
	bookRepo := repository.NewBookRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize services
	bookService := service.NewBookService(bookRepo, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	bookHandler := handler.NewBookHandler(bookService)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, bookHandler, userHandler)

	addr := ":" + cfg.ServerPort
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()
	log.Printf("Swagger documentation available at: http://localhost%s/swagger/index.html", addr)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Println("shutting down the server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
}
