package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/barriolink/community-events-backend/config"
	"github.com/barriolink/community-events-backend/database"
	_ "github.com/barriolink/community-events-backend/docs"
	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/internal/event"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/internal/rsvp"
	"github.com/barriolink/community-events-backend/internal/user"
	"github.com/barriolink/community-events-backend/middleware"
	"github.com/barriolink/community-events-backend/routes"
	"github.com/barriolink/community-events-backend/utils"
)

// @title           Community Events API
// @version         1.0
// @description     Backend for community event discovery, RSVPs and reviews.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (optional, rate limiter falls back to in-memory)
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis init failed: %v", err)
		log.Println("ℹ️ Continuing with in-memory rate limiting")
	}

	// Init Kafka (optional activity stream)
	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()

	// 🔥 Init Firebase - SINGLE INITIALIZATION POINT
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (JWT verification fallback)")
	} else if utils.IsFirebaseAuthEnabled() {
		log.Println("✅ Firebase auth initialized successfully")
	}

	verifier, err := middleware.NewVerifier(cfg)
	if err != nil {
		log.Fatalf("❌ No token verifier available: %v", err)
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&user.User{},
		&event.Event{},
		&rsvp.Attendance{},
		&review.Review{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, db, verifier)

	log.Printf("🚀 Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}
}
