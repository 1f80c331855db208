package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/Kariqs/justdrops-api/initializers"
	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/routes"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := initializers.LoadEnv()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	db, err := initializers.ConnectToDB(cfg.Database, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	uploader, err := initializers.NewUploader(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("Error configuring image uploads: %v", err)
	}

	svc := services.New(services.Deps{
		Store:         db,
		Gateway:       initializers.NewGateway(cfg.Square),
		Mailer:        initializers.NewMailer(cfg.SMTP),
		Uploader:      uploader,
		JWTSecret:     cfg.Auth.JWTSecret,
		SessionTTL:    cfg.Auth.SessionTTL,
		LabelDelay:    cfg.LabelDelay,
		EnforceTotals: cfg.EnforceTotals,
		LogoURL:       cfg.LogoURL,
	})
	if err := initializers.Seed(ctx, svc, cfg.Auth, cfg.SeedFile); err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestID(), middlewares.Logger())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.Setup(server, controllers.NewHandler(svc, db, cfg.Auth.CookieSecure), svc.Auth)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped.")
}
