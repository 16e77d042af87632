package app

import (
	"database/sql"
	"os"

	"github.com/IwanSuryana77/PresenceApp/internal/attendance"
	"github.com/IwanSuryana77/PresenceApp/internal/health"
	"github.com/IwanSuryana77/PresenceApp/internal/leave"
	"github.com/IwanSuryana77/PresenceApp/internal/message"
	"github.com/IwanSuryana77/PresenceApp/internal/messaging/kafka"
	"github.com/IwanSuryana77/PresenceApp/internal/middleware"
	"github.com/IwanSuryana77/PresenceApp/internal/reimbursement"
	"github.com/IwanSuryana77/PresenceApp/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	messageRepo := message.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	reimbursementRepo := reimbursement.NewRepository(gormDB)
	statsRepo := stats.NewRepository(gormDB)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo)
	messageService := message.NewService(db, messageRepo)
	reimbursementService := reimbursement.NewServiceWithOutbox(db, reimbursementRepo, outboxRepo)
	statsService := stats.NewService(statsRepo, rdb)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	healthHandler := health.NewHandler()
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	messageHandler := message.NewHandler(messageService)
	reimbursementHandler := reimbursement.NewHandlerWithRedis(reimbursementService, rdb)
	statsHandler := stats.NewHandler(statsService)

	// --- Cross-cutting middleware ---
	var verifier middleware.IdentityVerifier
	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		verifier = middleware.NewJWTVerifier(secret)
	}

	var idempotency []gin.HandlerFunc
	if rdb != nil {
		idempotency = append(idempotency, middleware.Idempotency(rdb))
	}

	// --- Routes Registration ---
	api := router.Group("/api")
	api.Use(
		middleware.VerifyIdentity(verifier),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(50), 100),
	)
	{
		health.RegisterRoutes(api, healthHandler)
		attendance.RegisterRoutes(api, attendanceHandler, idempotency...)
		leave.RegisterRoutes(api, leaveHandler, idempotency...)
		reimbursement.RegisterRoutes(api, reimbursementHandler, idempotency...)
		message.RegisterRoutes(api, messageHandler)
		stats.RegisterRoutes(api, statsHandler)
	}

	return nil
}
