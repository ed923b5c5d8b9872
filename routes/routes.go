package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/internal/event"
	"github.com/barriolink/community-events-backend/internal/reports"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/internal/rsvp"
	"github.com/barriolink/community-events-backend/internal/user"
	"github.com/barriolink/community-events-backend/middleware"
)

// Setup wires every module and mounts the API under /api. All domain routes
// sit behind token auth; /healthz and /swagger stay open.
func Setup(r *gin.Engine, db *gorm.DB, verifier middleware.TokenVerifier) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(middleware.RequestID())
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP for the audit trail

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)

	// ========== Users ==========
	userRepo := user.NewRepository(db)
	userSvc := user.NewService(userRepo, auditSvc)
	userHandler := user.NewHandler(userSvc)

	auditHandler := auditlog.NewHandler(auditSvc, func(ctx context.Context, firebaseUID string) (uint, error) {
		u, err := userSvc.ResolveByFirebaseUID(ctx, firebaseUID)
		if err != nil {
			return 0, err
		}
		return u.ID, nil
	})

	// ========== Events, RSVPs, Reviews ==========
	eventRepo := event.NewRepository(db)

	rsvpRepo := rsvp.NewRepository(db)
	rsvpSvc := rsvp.NewService(rsvpRepo, eventRepo, auditSvc)
	rsvpHandler := rsvp.NewHandler(rsvpSvc, userSvc)

	reviewRepo := review.NewRepository(db)
	reviewSvc := review.NewService(reviewRepo, eventRepo, auditSvc)
	reviewHandler := review.NewHandler(reviewSvc, userSvc)

	eventSvc := event.NewService(eventRepo, rsvpRepo, reviewRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc, userSvc)

	// ========== Reports ==========
	reportSvc := reports.NewService(eventRepo, rsvpRepo, reviewRepo, reports.NewExporter())
	reportHandler := reports.NewHandler(reportSvc, userSvc)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(verifier))

	userRoutes := protected.Group("/users")
	{
		userRoutes.POST("/sync", userHandler.SyncUser)
		userRoutes.GET("/me/activity", auditHandler.GetMyActivity)
	}

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("", eventHandler.ListEvents)
		eventRoutes.GET("/my-events", eventHandler.GetMyEvents)
		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.POST("/:id/attend", rsvpHandler.Attend)
		eventRoutes.POST("/:id/cancel", rsvpHandler.Cancel)
		eventRoutes.GET("/:id/report", reportHandler.GetEventReport)
	}

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.POST("/:eventId", reviewHandler.SubmitReview)
		reviewRoutes.GET("/:eventId", reviewHandler.GetEventReviews)
	}
}
