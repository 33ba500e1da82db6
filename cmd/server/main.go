package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jerome2525/wingz-api/internal/config"
	"github.com/jerome2525/wingz-api/internal/handlers"
	"github.com/jerome2525/wingz-api/internal/middleware"
	"github.com/jerome2525/wingz-api/internal/permissions"
	"github.com/jerome2525/wingz-api/internal/repositories/mongodb"
	"github.com/jerome2525/wingz-api/internal/services"
	"github.com/jerome2525/wingz-api/pkg/cache"
	"github.com/jerome2525/wingz-api/pkg/database"
	"github.com/jerome2525/wingz-api/pkg/logger"
	"github.com/jerome2525/wingz-api/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.App.Timezone, err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     fmt.Sprintf("%d", cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache, appLogger)

	userRepo := mongodb.NewUserRepository(db.Database, cacheService)
	rideRepo := mongodb.NewRideRepository(db.Database, cacheService)
	rideEventRepo := mongodb.NewRideEventRepository(db.Database)

	aggregator := services.NewEventAggregator(location)

	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, appLogger)
	userService := services.NewUserService(userRepo, appLogger)
	rideService := services.NewRideService(rideRepo, userRepo, rideEventRepo, aggregator, cfg.Listing.DistanceSortMaxResults, appLogger)
	rideEventService := services.NewRideEventService(rideEventRepo, rideRepo)

	// Account creation is the only action open to anonymous callers; the
	// user handler applies it on the registration endpoint only.
	policy := permissions.NewPolicy(permissions.ActionCreate)
	ridePolicy := permissions.NewPolicy()

	authHandler := handlers.NewAuthHandler(authService, appLogger)
	userHandler := handlers.NewUserHandler(userService, policy, appLogger)
	rideHandler := handlers.NewRideHandler(rideService, ridePolicy, appLogger)
	rideEventHandler := handlers.NewRideEventHandler(rideEventService, ridePolicy, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.PrincipalResolver(userRepo, cfg.Security.JWTSecret, appLogger))
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler)
		routes.SetupUserRoutes(v1, userHandler)
		routes.SetupRideRoutes(v1, rideHandler)
		routes.SetupRideEventRoutes(v1, rideEventHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		}
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["database"] = err.Error()
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["cache"] = err.Error()
		}
		c.JSON(status, health)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting %s on port %d", cfg.App.Name, cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
