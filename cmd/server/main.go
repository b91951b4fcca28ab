package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/Vovarama1992/gold-assistant/internal/chat"
	"github.com/Vovarama1992/gold-assistant/internal/config"
	"github.com/Vovarama1992/gold-assistant/internal/intent"
	"github.com/Vovarama1992/gold-assistant/internal/logging"
	"github.com/Vovarama1992/gold-assistant/internal/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		boot := logging.New("info", "json")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	handler, cleanup, err := newApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup")
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}

// newApp wires templates, the optional hit log and the router. cleanup
// releases the database pool when one was opened.
func newApp(cfg *config.Config, log zerolog.Logger) (http.Handler, func(), error) {
	cleanup := func() {}

	// --- templates ---
	rules := intent.DefaultRules()
	catalog, err := intent.LoadCatalog(rules)
	if err != nil {
		return nil, cleanup, fmt.Errorf("load templates: %w", err)
	}

	// --- DB (optional) ---
	var repo chat.Repo
	if cfg.Database.URL != "" {
		db, err := openDB(cfg.Database.URL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { db.Close() }
		repo = chat.NewRepo(db)
	} else {
		log.Info().Msg("DATABASE_URL is not set, intent hit log disabled")
	}

	// --- chat module wiring ---
	chatService := chat.NewService(
		repo,
		intent.NewTopicGuard(catalog.Refusal),
		intent.NewMatcher(rules, catalog),
		catalog.Welcome,
		log,
	)
	chatHandler, err := chat.NewHandler(chatService, cfg.Server.MaxBodyBytes)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("chat handler: %w", err)
	}

	r := server.NewRouter(server.Options{
		AllowedOrigins: cfg.Server.Origins(),
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	}, chatHandler, log)

	return r, cleanup, nil
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := chat.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db schema error: %w", err)
	}
	return db, nil
}
