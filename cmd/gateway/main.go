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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	api "github.com/mind-engage/mindengage-practice/internal/api/http"
	auth "github.com/mind-engage/mindengage-practice/internal/auth/middleware"
	"github.com/mind-engage/mindengage-practice/internal/config"
	"github.com/mind-engage/mindengage-practice/internal/db"
	"github.com/mind-engage/mindengage-practice/internal/exam"
	"github.com/mind-engage/mindengage-practice/internal/grading"
	"github.com/mind-engage/mindengage-practice/internal/logging"
	"github.com/mind-engage/mindengage-practice/internal/metrics"
	"github.com/mind-engage/mindengage-practice/internal/results"
	"github.com/mind-engage/mindengage-practice/internal/session"
	storage "github.com/mind-engage/mindengage-practice/internal/storage"
	syncx "github.com/mind-engage/mindengage-practice/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Mode == config.ModeOnline, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}
	defer dbh.Close()

	// --- Question bank ---
	bank := exam.NewSQLStore(dbh, cfg.DBDriver)
	seed, err := exam.LoadSeed(cfg.BankSeedPath)
	if err != nil {
		return err
	}
	n, err := exam.SeedIfEmpty(openCtx, bank, seed)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("question bank seeded", zap.Int("questions", n))
	}

	// --- Result sinks ---
	store := results.NewSQLStore(dbh)
	sinks := session.MultiSink{store, results.NewEventSink(syncx.NewEventRepo(dbh), cfg.SiteID), metrics.Sink{}}

	var archive *results.ArchiveSink
	if cfg.BlobDriver == "fs" {
		bs, err := storage.NewFSStore(cfg.BlobBasePath)
		if err != nil {
			return err
		}
		archive = results.NewArchiveSink(bs, "results")
		sinks = append(sinks, archive)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(openCtx).Err(); err != nil {
			logger.Warn("redis unreachable at startup", zap.Error(err))
		}
		sinks = append(sinks, results.NewPublisher(rdb, cfg.ResultsChannel))
	}

	// --- Sessions ---
	policy, err := grading.ParseEssayPolicy(cfg.EssayPolicy)
	if err != nil {
		return err
	}
	mgr := session.NewManager(bank,
		session.WithDuration(cfg.TestDurationMinutes),
		session.WithRetention(cfg.SessionRetention),
		session.WithManagerLogger(logger),
		session.WithSessionOptions(
			session.WithGrader(grading.NewDefaultGrader(grading.WithEssayPolicy(policy))),
			session.WithSink(sinks),
		))
	defer mgr.Close()
	if err := mgr.StartReaper(cfg.ReapSchedule); err != nil {
		return err
	}
	if err := metrics.RegisterLiveSessions(prometheus.DefaultRegisterer, mgr.Len); err != nil {
		return err
	}

	// --- HTTP ---
	router := api.NewRouter(api.Deps{
		Bank:     bank,
		Sessions: mgr,
		Results:  store,
		Archive:  archive,
		Auth:     auth.NewAuthService(cfg.AuthHMACSecret),
		Users:    auth.NewUserStore(dbh),
		Admin:    auth.Admin{User: cfg.AdminUser, PassHash: cfg.AdminPassHash},
		Origins:  cfg.CORSOrigins,
		Ready: func(ctx context.Context) error {
			if err := dbh.PingContext(ctx); err != nil {
				return err
			}
			if rdb != nil {
				return rdb.Ping(ctx).Err()
			}
			return nil
		},
		Log: logger,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("mode", string(cfg.Mode)),
			zap.String("db", cfg.DBDriver),
			zap.Int("duration_minutes", cfg.TestDurationMinutes))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
