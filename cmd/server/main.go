package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"elearning_api/internal/api"        // API handlers
	"elearning_api/internal/config"     // Configuration
	"elearning_api/internal/db"         // Schema migration
	"elearning_api/internal/middleware" // Middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Ensure the schema exists; AutoMigrate is safe on every startup
	db.MustMigrate(gormDB)

	// Setup Redis client for report caching; optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, report caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()

	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Write handlers pick the Redis client out of the context to drop stale
	// report caches after each mutation
	injectRedis := func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	}

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Welcome to the eLearning API!")
	})

	// Auth routes
	r.POST("/register", api.RegisterHandler(gormDB))
	r.POST("/login", api.LoginHandler(gormDB, cfg.JWTSecret))
	r.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.MeHandler(gormDB))

	// Course, module and enrollment routes
	r.GET("/courses", api.ListCoursesHandler(gormDB))
	r.POST("/courses", injectRedis, api.CreateCourseHandler(gormDB))
	r.GET("/modules", api.ListModulesHandler(gormDB))
	r.POST("/modules", injectRedis, api.CreateModuleHandler(gormDB))
	r.POST("/enrollments", injectRedis, api.EnrollHandler(gormDB))

	// Admin-only course deletion; modules cascade at the schema level
	r.DELETE("/courses/:id",
		middleware.JWTAuthMiddleware(cfg.JWTSecret),
		middleware.AdminOnlyMiddleware(gormDB),
		injectRedis,
		api.DeleteCourseHandler(gormDB))

	// Read-only reporting routes, cached in Redis
	r.GET("/course-stats", api.CourseStatsHandler(gormDB, redisClient))
	r.GET("/instructor-courses", api.InstructorCoursesHandler(gormDB, redisClient))
	r.GET("/student-enrollments", api.StudentEnrollmentsHandler(gormDB, redisClient))
	r.GET("/popular-course", api.PopularCourseHandler(gormDB, redisClient))
	r.GET("/dashboard-stats", api.DashboardStatsHandler(gormDB, redisClient))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
