package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"swmanager/api/swagger"
	"swmanager/internal/auth"
	"swmanager/internal/config"
	"swmanager/internal/database"
	"swmanager/internal/handler"
	"swmanager/internal/middleware"
	"swmanager/internal/repository"
	"swmanager/internal/scope"
	"swmanager/internal/service"
	"swmanager/internal/websocket"
	"swmanager/pkg/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// @title           SW Management API
// @version         1.0
// @description     Role-scoped inventory of computers, departments, software, vendors, licenses and installations.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		newLogger(gin.DebugMode).Fatal("load configuration", zap.Error(err))
	}

	logger := newLogger(cfg.Server.Mode)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(mode string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if mode == gin.ReleaseMode {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scopes, err := scope.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := scopes.Close(); err != nil {
			logger.Warn("close database scopes", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if scopes.Root() == nil {
			return errors.New("auto-migrate needs the root database scope")
		}
		if err := database.Migrate(scopes.Root()); err != nil {
			return err
		}
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHasher)
	if err != nil {
		return err
	}
	if cfg.Auth.PasswordHasher != config.HasherBcrypt {
		logger.Warn("passwords are stored as unsalted SHA-256; set PASSWORD_HASHER=bcrypt for new deployments")
	}
	tokens := auth.NewTokenService(cfg.Auth.Secret(), auth.WithTTL(cfg.Auth.TokenTTL))

	// Audit stream
	wsHub := websocket.NewHub(logger.Named("audit-stream"))

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager()
	auditRepo := repository.NewAuditLogRepository()
	userRepo := repository.NewUserRepository()
	softwareTypeRepo := repository.NewSoftwareTypeRepository()
	departmentRepo := repository.NewDepartmentRepository()
	licenseRepo := repository.NewLicenseRepository()

	loginService := service.NewLoginService(txManager, userRepo, hasher, tokens)
	adminService := service.NewAdminService(txManager, userRepo, softwareTypeRepo, auditRepo, hasher, wsHub)
	managerService := service.NewManagerService(txManager, service.ManagerRepositories{
		Computers:     repository.NewComputerRepository(),
		Departments:   departmentRepo,
		Assignments:   repository.NewComputerAssignmentRepository(),
		SoftwareTypes: softwareTypeRepo,
		Software:      repository.NewSoftwareRepository(),
		Vendors:       repository.NewVendorRepository(),
		Licenses:      licenseRepo,
		Installations: repository.NewInstallationRepository(),
		AuditLogs:     auditRepo,
	}, wsHub)
	reportService := service.NewReportService(txManager, repository.NewReportRepository(), auditRepo, wsHub)
	supervisorService := service.NewSupervisorService(txManager, departmentRepo, licenseRepo, auditRepo, wsHub)

	authMiddleware := middleware.NewAuth(tokens, scopes)
	loginLimiter := middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.LoginRate), cfg.RateLimit.LoginBurst)

	// Set up Gin Router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = cfg.CORS.AllowedMethods
	corsConfig.AllowHeaders = cfg.CORS.AllowedHeaders
	corsConfig.AllowCredentials = cfg.CORS.AllowCredentials
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID, response.TotalCountHeader}
	router.Use(cors.New(corsConfig))

	if cfg.Server.AppTitle != "" {
		swagger.SwaggerInfo.Title = cfg.Server.AppTitle
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "title": cfg.Server.AppTitle})
	})

	api := router.Group("")
	handler.NewLoginHandler(loginService, authMiddleware, loginLimiter).RegisterRoutes(api)
	handler.NewAdminHandler(adminService, authMiddleware, wsHub, tokens).RegisterRoutes(api)
	handler.NewManagerHandler(managerService, reportService, authMiddleware).RegisterRoutes(api)
	handler.NewSupervisorHandler(supervisorService, authMiddleware).RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("title", cfg.Server.AppTitle))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
