package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"saldoku.backend/internal/config"
	"saldoku.backend/internal/infrastructure/jobs"
	"saldoku.backend/internal/infrastructure/repositories"
	"saldoku.backend/internal/interfaces/http/handlers"
	"saldoku.backend/internal/interfaces/http/middleware"
	"saldoku.backend/internal/usecases"
	"saldoku.backend/pkg/jwt"
	"saldoku.backend/pkg/logger"
	"saldoku.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Connect
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	savingsPlanRepo := repositories.NewSavingsPlanRepository(db)
	topupRequestRepo := repositories.NewTopupRequestRepository(db)
	logRepo := repositories.NewLogRepository(db)
	uow := repositories.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Usecases
	auditSink := usecases.NewAuditSink(logRepo)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, cfg.Ledger.Currency)
	authUsecase := usecases.NewAuthUsecase(uow, userRepo, walletUsecase, jwtService, sessionStore, cfg.JWT.RefreshExpiry, auditSink)
	transferUsecase := usecases.NewTransferUsecase(uow, walletRepo, transactionRepo, walletUsecase, auditSink, cfg.Ledger)
	savingsUsecase := usecases.NewSavingsUsecase(uow, savingsPlanRepo, walletRepo, transactionRepo, walletUsecase, auditSink, cfg.Ledger)
	topupUsecase := usecases.NewTopupUsecase(uow, topupRequestRepo, walletRepo, transactionRepo, walletUsecase, auditSink, cfg.Ledger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	transferHandler := handlers.NewTransferHandler(transferUsecase)
	savingsHandler := handlers.NewSavingsHandler(savingsUsecase)
	topupHandler := handlers.NewTopupHandler(topupUsecase)
	adminHandler := handlers.NewAdminHandler(userRepo, walletRepo, transactionRepo, logRepo, auditSink)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	completionJob := jobs.NewSavingsPlanCompletionJob(savingsPlanRepo, time.Minute)
	go completionJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		walletHandler:   walletHandler,
		transferHandler: transferHandler,
		savingsHandler:  savingsHandler,
		topupHandler:    topupHandler,
		adminHandler:    adminHandler,
		authMiddleware:  authMiddleware,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		completionJob.Stop()
		cancel()
	}()

	log.Printf("Saldoku backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
