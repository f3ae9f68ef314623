package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/amitkkna/quote-sub001/internal/application/billing"
	companyapp "github.com/amitkkna/quote-sub001/internal/application/company"
	printingapp "github.com/amitkkna/quote-sub001/internal/application/printing"
	reportapp "github.com/amitkkna/quote-sub001/internal/application/report"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/cache"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/config"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/logger"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/persistence"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/printing"
	"github.com/amitkkna/quote-sub001/internal/interfaces/http/handler"
	"github.com/amitkkna/quote-sub001/internal/interfaces/http/middleware"
	"github.com/amitkkna/quote-sub001/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting quotation server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithZap(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database ready")

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)

	// Report cache: Redis when configured, otherwise in-process
	var reportCache cache.ReportCache
	if cfg.Report.CacheEnabled {
		if cfg.Redis.Host != "" {
			redisCache, err := cache.NewRedisReportCache(&cfg.Redis)
			if err != nil {
				log.Fatal("Failed to connect to Redis", zap.Error(err))
			}
			reportCache = redisCache
			log.Info("Report cache enabled", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr()))
		} else {
			reportCache = cache.NewInMemoryReportCache()
			log.Info("Report cache enabled", zap.String("backend", "memory"))
		}
		defer func() {
			if err := reportCache.Close(); err != nil {
				log.Error("Error closing report cache", zap.Error(err))
			}
		}()
	}

	// PDF rendering
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		ExecPath:       cfg.PDF.ChromePath,
		DefaultTimeout: cfg.PDF.RenderTimeout,
		NoSandbox:      os.Getuid() == 0,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		_ = renderer.Close()
	}()
	engine := printing.NewTemplateEngine()

	// Application services. Billing services invalidate the report cache
	// after every invoice write.
	companyService := companyapp.NewService(companyRepo, log)
	reportService := reportapp.NewService(invoiceRepo, reportCache, cfg.Report.CacheTTL, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, companyRepo, reportService, log)
	quotationService := billingapp.NewQuotationService(quotationRepo, invoiceRepo, companyRepo, reportService, log)
	pdfService := printingapp.NewService(invoiceRepo, quotationRepo, companyRepo, engine, renderer, printingapp.RenderOptions{
		PaperWidth:  cfg.PDF.PaperWidth,
		PaperHeight: cfg.PDF.PaperHeight,
		Timeout:     cfg.PDF.RenderTimeout,
	}, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	web := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := web.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	web.Use(middleware.RequestID())
	web.Use(logger.Recovery(log))
	web.Use(logger.GinMiddleware(log))
	web.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	web.Use(middleware.CORSWithConfig(corsConfig))

	web.GET("/health", healthHandler(db))

	router.NewRouter(web, router.WithAPIVersion("v1")).
		Register(handler.NewCompanyHandler(companyService)).
		Register(handler.NewInvoiceHandler(invoiceService, pdfService)).
		Register(handler.NewQuotationHandler(quotationService, pdfService)).
		Register(handler.NewReportHandler(reportService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        web,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
