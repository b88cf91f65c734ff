package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/workflow"
)

func main() {
	// Load configuration
	cfg := config.Load()
	config.InitLogger(cfg)
	golog.Info("✅ Config loaded successfully")

	// Initialize services
	backend := services.NewBackendClient(cfg.Backend.URL, cfg.Upload.PlaceholderEmail, cfg.Backend.Timeout)
	storageService := services.NewStorageService(services.NewPreviewService())
	golog.Infof("✅ Services initialized, backend at %s", cfg.Backend.URL)

	// Initialize session repository
	sessions := repositories.NewSessionRepository(func() *repositories.Session {
		return &repositories.Session{
			Upload:   workflow.NewUploadWorkflow(backend),
			Feedback: workflow.NewFeedbackWidget(),
			Login:    workflow.NewLoginForm(backend, nil),
			Signup:   workflow.NewSignupForm(backend, nil),
		}
	}, cfg.Session.MaxSessions, nil)
	golog.Info("✅ Session repository initialized")

	// Start session sweeper
	sweeper := services.NewSessionSweeper(sessions, cfg.Session.TTL, cfg.Session.SweepInterval, nil)
	sweeper.Start(context.Background())
	golog.Info("✅ Session sweeper started")

	app := handlers.NewApp(handlers.AppConfig{
		AppName:       "AI Resume Analyzer",
		MaxUploadSize: cfg.Upload.MaxUploadSize,
		SessionCookie: cfg.Session.CookieName,
		SecureCookies: cfg.IsProduction(),
		AccessLog:     true,
	}, handlers.Dependencies{
		Sessions: sessions,
		Storage:  storageService,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		golog.Info("🛑 Shutting down server...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			golog.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	golog.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		golog.Fatalf("❌ Failed to start server: %v", err)
	}
}
