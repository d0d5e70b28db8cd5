package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtauth "zoo-registry/internal/adapters/auth/jwtauth"
	pg "zoo-registry/internal/adapters/storage/postgres"
	"zoo-registry/internal/config"
	"zoo-registry/internal/platform/logger"
	"zoo-registry/internal/platform/mail"
	"zoo-registry/internal/ports/auth"
	"zoo-registry/internal/router"
)

// @title Zoo Registry API
// @version 1.0
// @description Registro de zoológicos con sus direcciones y animales. Los PUT usan control de concurrencia optimista vía If-Match/ETag.
// @BasePath /
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "zoo-registry",
	})

	db, err := pg.Open(cfg.Database.DSN())
	if err != nil {
		log.Error("database unavailable, falling back to in-memory storage", map[string]any{"error": err.Error()})
		db = nil
	} else {
		if err := pg.RunMigrations("file://migrations", cfg.Database.URL()); err != nil {
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	var mailer mail.Mailer = mail.Noop{}
	if cfg.SMTP.Enabled {
		m, err := mail.NewSMTP(mail.SMTPOptions{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
		})
		if err != nil {
			log.Error("smtp client failed, notifications disabled", map[string]any{"error": err.Error()})
		} else {
			mailer = m
		}
	}

	var verifier auth.AuthVerifier // nil = modo dev (X-Debug-User-ID)
	if cfg.Auth.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.Auth.JWTSecret)
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Mailer:       mailer,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
	if db != nil {
		_ = db.Close()
	}
}
