package app

import (
	"database/sql"
	"net/http"

	"go-hrms/internal/employeeprofile"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payrollexecution"
	"go-hrms/internal/payrolltracking"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/recruitment"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg Config,
	db *sql.DB,
	gormDB *gorm.DB,
	client *redis.Client,
) error {
	logger := zap.L()

	// a nil *redis.Client must not reach the routes as a non-nil interface
	var rdb redis.Cmdable
	if client != nil {
		rdb = client
	}

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	leaveRepo := leave.NewRepository(gormDB)
	payrollRepo := payrollexecution.NewRepository(gormDB)
	trackingRepo := payrolltracking.NewRepository(gormDB)
	recruitmentRepo := recruitment.NewRepository(gormDB)
	profileRepo := employeeprofile.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	leaveService := leave.NewService(db, leaveRepo, logger)
	payrollService := payrollexecution.NewService(db, payrollRepo, outboxRepo, logger)
	trackingService := payrolltracking.NewService(db, trackingRepo, counterRepo, payrollService, logger)
	recruitmentService := recruitment.NewService(db, recruitmentRepo, logger)
	profileService := employeeprofile.NewService(db, profileRepo, counterRepo, outboxRepo, rdb, logger)

	// --- Handlers ---
	policy := cfg.UnknownFields
	leaveHandler := leave.NewHandler(leaveService, policy, logger)
	payrollHandler := payrollexecution.NewHandler(payrollService, policy, logger)
	trackingHandler := payrolltracking.NewHandler(trackingService, policy, logger)
	recruitmentHandler := recruitment.NewHandler(recruitmentService, policy, logger)
	profileHandler := employeeprofile.NewHandler(profileService, policy, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	router.Use(middleware.ContextLogger(logger))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)
	{
		employeeprofile.RegisterRoutes(api, profileHandler, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		payrollexecution.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		payrolltracking.RegisterRoutes(api, trackingHandler, rbacService)
		recruitment.RegisterRoutes(api, recruitmentHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	logger.Info("modules registered", zap.String("unknown_fields", string(policy)))
	return nil
}
