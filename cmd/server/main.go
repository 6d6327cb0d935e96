package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/wyrdhq/authcore/modules/signup"
	"github.com/wyrdhq/authcore/pkg/auth"
	"github.com/wyrdhq/authcore/pkg/challenge"
	"github.com/wyrdhq/authcore/pkg/config"
	"github.com/wyrdhq/authcore/pkg/email"
	"github.com/wyrdhq/authcore/pkg/httpserver"
	"github.com/wyrdhq/authcore/pkg/logger"
	"github.com/wyrdhq/authcore/pkg/password"
	"github.com/wyrdhq/authcore/pkg/pg"
	"github.com/wyrdhq/authcore/pkg/redis"
	"github.com/wyrdhq/authcore/storage"
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Product string `env:"PRODUCT_NAME" envDefault:"Wyrd"`
}

func main() {
	ctx := context.Background()

	var (
		appCfg   appConfig
		pgCfg    pg.Config
		redisCfg redis.Config
		httpCfg  httpserver.Config
		mailCfg  email.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&mailCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Env, "authcore"))
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		fatal(log, "postgres connect failed", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		fatal(log, "migrations failed", err)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		fatal(log, "redis connect failed", err)
	}
	defer redisClient.Close()

	var sender email.EmailSender
	if mailCfg.PostmarkServerToken != "" {
		sender, err = email.NewPostmarkClient(mailCfg)
		if err != nil {
			fatal(log, "postmark setup failed", err)
		}
	} else {
		log.Warn("no postmark token configured, writing emails to disk",
			slog.String("dir", mailCfg.DevOutputDir))
		sender = email.NewDevSender(mailCfg.DevOutputDir)
	}

	store := storage.NewPostgresStorage(pool)
	hasher := password.New()

	credentials := auth.NewCredentialService(store, hasher,
		auth.WithCredentialLogger(log))
	verification := auth.NewVerificationService(store, challenge.NewRedisStore(redisClient), sender,
		auth.WithVerificationLogger(log),
		auth.WithIssuer(appCfg.Product))

	router := signup.Router(
		signup.Services{Credentials: credentials, Verification: verification},
		signup.WithLogger(log),
		signup.WithHealthcheck(httpserver.HealthCheckHandler(ctx, log,
			pg.Healthcheck(pool),
			redis.Healthcheck(redisClient),
		)),
	)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, router); err != nil {
		fatal(log, "server failed", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, logger.Error(err))
	os.Exit(1)
}
