// Command sociallogin serves a Google login flow: it redirects the browser to
// Google, redeems the returned code, fetches the profile and syncs the
// resulting identity into an in-memory directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/sociallogin/pkg/clientip"
	"github.com/dmitrymomot/sociallogin/pkg/config"
	"github.com/dmitrymomot/sociallogin/pkg/environment"
	"github.com/dmitrymomot/sociallogin/pkg/httpsend"
	"github.com/dmitrymomot/sociallogin/pkg/httpserver"
	"github.com/dmitrymomot/sociallogin/pkg/logger"
	"github.com/dmitrymomot/sociallogin/pkg/oauth/google"
	"github.com/dmitrymomot/sociallogin/pkg/redis"
	"github.com/dmitrymomot/sociallogin/pkg/requestid"
	"github.com/dmitrymomot/sociallogin/pkg/statestore"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"sociallogin"`
	LogLevel string `env:"LOG_LEVEL"` // overrides the APP_ENV preset: debug, info, warn, error
}

func loggerOptions(app appConfig) ([]logger.Option, error) {
	opts := []logger.Option{
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	}
	if app.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return opts, nil
}

func main() {
	var app appConfig
	config.MustLoad(&app)

	opts, err := loggerOptions(app)
	if err != nil {
		panic(err)
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), app, log); err != nil {
		log.Error("sociallogin stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, app appConfig, log *slog.Logger) error {
	var (
		googleCfg google.Config
		sendCfg   httpsend.Config
		stateCfg  statestore.Config
		redisCfg  redis.Config
		serverCfg httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&googleCfg) },
		func() error { return config.Load(&sendCfg) },
		func() error { return config.Load(&stateCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&serverCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	metrics := httpsend.NewMetrics(app.Name)
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}
	sender := httpsend.New(
		httpsend.WithConfig(sendCfg),
		httpsend.WithMetrics(metrics),
		httpsend.WithLogger(log),
	)

	provider, err := google.New(googleCfg, google.WithSender(sender), google.WithLogger(log))
	if err != nil {
		return err
	}

	var (
		states statestore.Store
		checks []func(context.Context) error
	)
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		states = statestore.NewRedis(client)
		checks = append(checks, redis.Healthcheck(client))
		log.Info("state store: redis")
	} else {
		states = statestore.NewMemory(time.Minute)
		log.Info("state store: memory")
	}

	h := &handler{
		provider:  provider,
		sender:    sender,
		states:    states,
		stateTTL:  stateCfg.TTL,
		directory: newDirectory(),
		logger:    log,
	}
	router := h.routes(
		environment.Parse(app.Env),
		promhttp.Handler(),
		httpserver.Liveness(),
		httpserver.Readiness(log, checks...),
	)

	return httpserver.New(serverCfg, router, httpserver.WithLogger(log)).Run(ctx)
}
