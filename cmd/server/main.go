package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/mailer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("", "")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to open database", "error", err)
	}
	defer store.Close()
	slog.Info("database ready", "dialect", store.Dialect)

	// メール未設定の場合は送信内容をログに出すだけ
	var sender mailer.Sender = mailer.LogSender{}
	if cfg.Email.Host != "" {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.User,
			Password: cfg.Email.Password,
			UseTLS:   cfg.Email.UseTLS,
			Timeout:  cfg.Email.Timeout,
		})
	} else {
		slog.Warn("EMAIL_HOST not set, notifications will only be logged")
	}
	if cfg.ContactEmailRecipient == "" {
		slog.Warn("CONTACT_EMAIL_RECIPIENT not set, every notification will fail")
	}

	notifier := service.NewEmailNotifier(sender, service.NotifierConfig{
		From:     cfg.DefaultFromEmail,
		To:       cfg.ContactEmailRecipient,
		SiteName: cfg.SiteName,
		Timeout:  cfg.Email.Timeout,
	})
	contactService := service.NewContactService(store.Contacts, notifier)

	flashKey, err := cfg.FlashKey()
	if err != nil {
		logging.Fatal("invalid flash key", "error", err)
	}
	if cfg.FlashHashKey == "" {
		slog.Warn("FLASH_HASH_KEY not set, using a random key for this process")
	}
	pages, err := handler.NewPageRenderer(cfg.SiteName)
	if err != nil {
		logging.Fatal("failed to parse templates", "error", err)
	}

	h := handler.New(store.DB)
	contactHandler := handler.NewContactHandler(contactService, pages, handler.NewFlash(flashKey))

	crossOrigin, err := handler.CrossOrigin(trustedOrigins(cfg.TrustedOrigins))
	if err != nil {
		logging.Fatal("invalid TRUSTED_ORIGINS", "error", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", contactHandler.Index)
	// GET 等は Submit 側で #contact へリダイレクトする
	mux.HandleFunc("/contact/submit", contactHandler.Submit)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.RequestLogger(handler.SecurityHeaders(crossOrigin(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Email.Timeout + 10*time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

func trustedOrigins(in []string) []string {
	var out []string
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
