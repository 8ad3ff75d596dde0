package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"veilandvow-backend/internal/admin"
	"veilandvow-backend/internal/auth"
	"veilandvow-backend/internal/cache"
	"veilandvow-backend/internal/captcha"
	"veilandvow-backend/internal/checkout"
	"veilandvow-backend/internal/config"
	"veilandvow-backend/internal/consultation"
	"veilandvow-backend/internal/crm"
	"veilandvow-backend/internal/db"
	"veilandvow-backend/internal/films"
	"veilandvow-backend/internal/inquiry"
	"veilandvow-backend/internal/journal"
	"veilandvow-backend/internal/middleware"
	"veilandvow-backend/internal/notifications"
	"veilandvow-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "veilandvow-backend",
		}
	}

	val := validation.New()

	resendClient := notifications.NewResendClient(cfg.ResendAPIKey)
	if resendClient == nil {
		logger.Info("resend mailer disabled")
	} else {
		logger.Info("resend mailer enabled", slog.String("from", cfg.ConsultationFrom))
	}

	// Interface fields are only assigned when the concrete client is
	// non-nil, otherwise a nil *T hides inside a non-nil interface and
	// the skip-when-unconfigured checks stop working.
	var leadStore consultation.RecordStore
	if airtable := crm.NewAirtableClient(cfg.AirtableToken, cfg.AirtableBaseID, cfg.AirtableTableID); airtable != nil {
		leadStore = airtable
		logger.Info("airtable store enabled")
	} else {
		logger.Info("airtable store disabled")
	}

	var leadMailer consultation.Mailer
	if m := notifications.NewLeadMailer(resendClient, cfg.ConsultationFrom, cfg.ConsultationTo); m != nil {
		leadMailer = m
	}

	consultationService := consultation.NewService(leadStore, leadMailer, logger)
	consultationHandler := consultation.NewHandler(consultationService, logger)

	var inquiryVerifier inquiry.Verifier
	if turnstile := captcha.NewTurnstileClient(cfg.TurnstileSecret); turnstile != nil {
		inquiryVerifier = turnstile
		logger.Info("turnstile verification enabled")
	}

	var inquiryNotifier inquiry.Notifier
	if m := notifications.NewInquiryMailer(resendClient, cfg.ConsultationFrom, cfg.InquiryAlertEmail); m != nil {
		inquiryNotifier = m
	}

	inquiryRepo := inquiry.NewRepository(cols.Inquiries)
	inquiryService := inquiry.NewService(inquiryRepo, inquiryVerifier, inquiryNotifier, cfg.Timezone)
	inquiryHandler := inquiry.NewHandler(inquiryService, val, logger)

	journalRepo := journal.NewRepository(cols.JournalPosts)
	journalService := journal.NewService(journalRepo, cfg.Timezone)
	journalHandler := journal.NewHandler(journalService, val, logger, cacheStore, cacheTTL)

	filmsRepo := films.NewRepository(cols.Films)
	filmsService := films.NewService(filmsRepo, cfg.Timezone)
	filmsHandler := films.NewHandler(filmsService, val, logger, cacheStore, cacheTTL)

	var stripeSessions checkout.Sessions
	if sc := checkout.NewStripeClient(cfg.StripeSecretKey); sc != nil {
		stripeSessions = sc
		logger.Info("stripe checkout enabled")
	} else {
		logger.Info("stripe checkout disabled")
	}
	checkoutHandler := checkout.NewHandler(stripeSessions, cfg, val, logger)

	adminHandler := admin.NewHandler(cfg, jwtManager, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	consultationLimiter := middleware.NewRateLimiter(cfg.RateLimitConsultation, window)
	inquiryLimiter := middleware.NewRateLimiter(cfg.RateLimitInquiry, window)

	r.Route("/api", func(api chi.Router) {
		api.With(consultationLimiter.Middleware).Post("/consultation", consultationHandler.Submit)
		api.With(inquiryLimiter.Middleware).Post("/inquiries", inquiryHandler.Create)
		api.Post("/stripe/create-checkout", checkoutHandler.CreateSession)

		api.Get("/journal", journalHandler.PublicList)
		api.Get("/journal/{slug}", journalHandler.PublicGetBySlug)
		api.Get("/films", filmsHandler.PublicList)
		api.Get("/films/{slug}", filmsHandler.PublicGetBySlug)

		api.Route("/admin", func(adm chi.Router) {
			adm.Post("/login", adminHandler.Login)
			adm.Post("/refresh", adminHandler.Refresh)
			adm.Post("/logout", adminHandler.Logout)

			// chi requires middlewares before routes; login stays public,
			// everything else goes through the auth sub-router.
			adm.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))

				protected.Get("/inquiries", inquiryHandler.AdminList)

				protected.Get("/journal", journalHandler.AdminList)
				protected.Post("/journal", journalHandler.AdminCreate)
				protected.Put("/journal/{id}", journalHandler.AdminUpdate)
				protected.Delete("/journal/{id}", journalHandler.AdminDelete)

				protected.Get("/films", filmsHandler.AdminList)
				protected.Post("/films", filmsHandler.AdminCreate)
				protected.Put("/films/{id}", filmsHandler.AdminUpdate)
				protected.Delete("/films/{id}", filmsHandler.AdminDelete)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
