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

	"LF-ADMIN/internal"
	"LF-ADMIN/internal/config"
	"LF-ADMIN/internal/handlers"
	"LF-ADMIN/internal/logger"
	"LF-ADMIN/internal/metrics"
	"LF-ADMIN/internal/services"
	"LF-ADMIN/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := internal.InitDB(cfg); err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}

	ctx := context.Background()
	var storageClient storage.StorageClient
	var localStorageClient *storage.LocalStorageClient

	switch cfg.Storage.Type {
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCS.BucketName, cfg.GCS.ProjectID, cfg.GCS.CredentialsPath)
		if err != nil {
			zlog.Fatal("Failed to initialize GCS client", zap.Error(err))
		}
		storageClient = client
		zlog.Info("GCS storage initialized", zap.String("bucket", cfg.GCS.BucketName))
	case "minio":
		client, err := storage.NewMinIOClient(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			zlog.Fatal("Failed to initialize MinIO client", zap.Error(err))
		}
		storageClient = client
		zlog.Info("MinIO storage initialized", zap.String("endpoint", cfg.MinIO.Endpoint), zap.String("bucket", cfg.MinIO.Bucket))
	default:
		client, err := storage.NewLocalStorageClient(cfg.Storage.LocalPath, cfg.Storage.LocalURL, cfg.Storage.SecretKey)
		if err != nil {
			zlog.Fatal("Failed to initialize local storage client", zap.Error(err))
		}
		storageClient = client
		localStorageClient = client
		zlog.Info("Local storage initialized", zap.String("path", cfg.Storage.LocalPath), zap.String("url", cfg.Storage.LocalURL))
	}
	defer storageClient.Close()

	// Office uploads are converted to PDF only when Gotenberg is configured
	var converter services.PDFConverter
	var pdfService *services.PDFService
	if cfg.Gotenberg.Enabled {
		pdfService, err = services.NewPDFService(cfg.Gotenberg.URL, cfg.Gotenberg.Timeout)
		if err != nil {
			zlog.Warn("Failed to initialize PDF service, storing uploads as-is", zap.Error(err))
		} else {
			converter = pdfService
			zlog.Info("PDF service initialized", zap.String("url", cfg.Gotenberg.URL), zap.String("timeout", cfg.Gotenberg.Timeout))
		}
	}

	activityLogService := services.NewActivityLogService(zlog)
	svc := handlers.Services{
		FieldDefinitions: services.NewFieldDefinitionService(),
		LeadForms:        services.NewLeadFormService(zlog),
		Banks:            services.NewBankService(),
		Users:            services.NewUserService(),
		Form16:           services.NewForm16Service(),
		Banners:          services.NewBannerService(),
		SubAgents:        services.NewSubAgentService(),
		CommissionLimits: services.NewCommissionLimitService(),
		Invoices:         services.NewInvoiceService(),
		ActivityLogs:     activityLogService,
		Statistics:       services.NewStatisticsService(),
		Documents:        services.NewDocumentService(storageClient, cfg.Storage.Type, converter, zlog),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(zlog))
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID", "X-User-Email"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(activityLogService.LoggingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"storage":   cfg.Storage.Type,
		})
	})
	r.GET("/metrics", metrics.Handler())

	if localStorageClient != nil && localStorageClient.Served() {
		r.GET("/files/*filepath", handlers.ServeSignedFile(localStorageClient))
		zlog.Info("Local file server enabled at /files/*")
	}

	handlers.RegisterRoutes(r.Group("/api/v1"), svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 150 * time.Second, // PDF conversion of large uploads
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := internal.CloseDB(); err != nil {
		zlog.Error("Error closing database", zap.Error(err))
	}
	if pdfService != nil {
		if err := pdfService.Close(); err != nil {
			zlog.Error("Error closing PDF service", zap.Error(err))
		}
	}

	zlog.Info("Server exited")
}
