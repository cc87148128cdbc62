package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"planpact/config"
	_ "planpact/docs"
	"planpact/internal/adapters/auth"
	"planpact/internal/adapters/email"
	"planpact/internal/adapters/queue"
	httpdelivery "planpact/internal/delivery/http"
	"planpact/internal/delivery/http/controllers"
	"planpact/internal/delivery/http/middleware"
	"planpact/internal/domain"
	"planpact/internal/notify"
	"planpact/internal/repository/memory"
	"planpact/internal/repository/postgres"
	"planpact/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title PlanPact API
// @version 1.0
// @description Create pacts, invite guests and track their responses.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
		Resend: email.ResendConfig{APIKey: cfg.Email.ResendAPIKey},
	})
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), cfg.FrontendURL)

	g, gctx := errgroup.WithContext(ctx)

	var (
		dispatcher domain.NotificationDispatcher
		inProcess  *notify.Dispatcher
	)
	switch cfg.Dispatch.Mode {
	case config.DispatchModeAMQP:
		client, err := queue.Dial(cfg.Dispatch.AMQPURL, cfg.Dispatch.AMQPQueue, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		dispatcher = queue.NewPublisher(client.Channel, client.Queue, logger)
		consumer := queue.NewConsumer(client.Channel, client.Queue, emailService, 0, logger)
		g.Go(func() error { return consumer.Run(gctx) })
	default:
		inProcess = notify.NewDispatcher(emailService, logger, cfg.Dispatch.Concurrency, 30*time.Second)
		dispatcher = inProcess
	}

	hasher := auth.NewBcryptHasher(0)
	timeout := cfg.ContextTimeout
	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:   controllers.NewAuthController(logger, services.NewAuthService(store.Users(), hasher, auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry, dispatcher, timeout)),
		Users:  controllers.NewUserController(logger, services.NewUserService(store.Users(), hasher, timeout)),
		Pacts:  controllers.NewPactController(logger, services.NewPactService(store, dispatcher, timeout)),
		Guests: controllers.NewGuestController(logger, services.NewGuestService(store, dispatcher, timeout)),
		RSVPs:  controllers.NewRSVPController(logger, services.NewRSVPService(store, timeout)),
	}, middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("server starting", "addr", server.Addr, "env", cfg.Environment, "store", cfg.StoreDriver, "dispatch", cfg.Dispatch.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if inProcess != nil {
			if err := inProcess.Wait(shutdownCtx); err != nil {
				logger.Warn("pending notifications abandoned", "err", err)
			}
		}
		return nil
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Store, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.New(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("database schema applied")
	}
	return postgres.NewStore(db), func() { _ = db.Close() }, nil
}
