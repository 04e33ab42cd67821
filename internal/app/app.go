// Package app builds the resolution pipeline, the content catalog and the
// reminder dispatcher from configuration. The HTTP server and the operator
// CLI both start from here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mafatih/internal/api"
	"mafatih/internal/catalog"
	"mafatih/internal/common/aws"
	"mafatih/internal/common/cache"
	"mafatih/internal/common/config"
	"mafatih/internal/common/database"
	commonhttp "mafatih/internal/common/http"
	"mafatih/internal/common/logger"
	"mafatih/internal/common/observability"
	"mafatih/internal/gateway"
	"mafatih/internal/knowledge"
	"mafatih/internal/reminder"
	"mafatih/internal/resolver"
)

const searchLimit = 5

type Options struct {
	// Retries is how many times each backing store connection is
	// attempted before the tier depending on it is disabled.
	Retries    int
	RetryDelay time.Duration

	Observability *observability.Observability
}

type App struct {
	Config    *config.Config
	Gateway   *gateway.Gateway
	Resolver  *resolver.Resolver
	Catalog   *catalog.Client
	Reminders *reminder.Dispatcher
	Checks    map[string]api.Checker
	Logger    logger.Logger

	zap     *zap.Logger
	closers []func() error
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// Build connects whatever backing stores are configured and wires the
// services on top of them. A store that is absent or unreachable only
// disables the tier that needs it; Build fails only on programming or
// configuration errors.
func Build(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, opts Options) (*App, error) {
	if opts.Retries <= 0 {
		opts.Retries = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	obs := opts.Observability
	if obs == nil {
		obs = observability.NewNoop()
	}

	log := logger.NewZapAdapter(zapLog)
	a := &App{
		Config: cfg,
		Checks: make(map[string]api.Checker),
		Logger: log,
		zap:    zapLog,
	}

	// --- PostgreSQL ---
	var db *sql.DB
	if cfg.Database.Postgres.Configured() {
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return err
			}
			return nil
		}, opts.Retries, opts.RetryDelay, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Warn("postgres unavailable, fatwa table search and reminder log disabled", zap.Error(err))
		} else {
			db = pg.GetDB()
			a.closers = append(a.closers, pg.Close)
			a.Checks["postgres"] = pg.Ping
			zapLog.Info("PostgreSQL connected successfully")
		}
	}

	// --- Elasticsearch ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.GetURL() != "" {
		err := retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, opts.Retries, opts.RetryDelay, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, index search disabled", zap.Error(err))
			esClient = nil
		} else {
			a.Checks["elasticsearch"] = esClient.Ping
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Redis ---
	var l2 redis.Cmdable
	if cfg.Database.Redis.Address != "" {
		var rdb *database.RedisClient
		err := retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rdb.Ping(ctx); err != nil {
				rdb.Close()
				return err
			}
			return nil
		}, opts.Retries, opts.RetryDelay, zapLog, "Redis connection")
		if err != nil {
			zapLog.Warn("redis unavailable, catalog cache is process-local", zap.Error(err))
		} else {
			l2 = rdb.GetClient()
			a.closers = append(a.closers, rdb.Close)
			a.Checks["redis"] = rdb.Ping
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Fatwa search chain ---
	var searchers []knowledge.Searcher
	if cfg.APIs.Supabase.Configured() {
		httpClient := commonhttp.NewClient(knowledge.SupabaseService, config.GetDuration(cfg.APIs.Supabase.Timeout))
		sb, err := knowledge.NewSupabaseSearcher(cfg.APIs.Supabase.URL, cfg.APIs.Supabase.AnonKey, httpClient, searchLimit)
		if err != nil {
			return nil, err
		}
		searchers = append(searchers, sb)
		a.Checks["supabase"] = sb.Ping
	}
	if db != nil {
		pgSearch, err := knowledge.NewPostgresSearcher(db, searchLimit)
		if err != nil {
			return nil, err
		}
		searchers = append(searchers, pgSearch)
	}
	if esClient != nil {
		esSearch, err := knowledge.NewElasticsearchSearcher(esClient.Client, esClient.Index, searchLimit)
		if err != nil {
			return nil, err
		}
		searchers = append(searchers, esSearch)
	}
	searchers = append(searchers, knowledge.NewMemorySearcher())
	chain := knowledge.NewChain(log, searchers...)

	// --- Gateway and resolver ---
	if !gateway.ValidKey(cfg.APIs.Groq.APIKey) {
		zapLog.Warn("groq api key missing or placeholder, AI tier will fall back")
	}
	a.Gateway = gateway.New(gateway.NewConfig(cfg.APIs.Groq), nil, log)
	a.Resolver = resolver.New(
		resolver.NewConfig(cfg.Resolver),
		a.Gateway,
		knowledge.NewStaticKB(),
		chain,
		obs,
		log,
	)

	// --- Catalog ---
	var catalogCache *cache.Cache
	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache, l2, log)
		if err != nil {
			return nil, err
		}
		catalogCache = c
		a.closers = append(a.closers, func() error {
			c.Close()
			return nil
		})
	}
	a.Catalog = catalog.NewFromConfig(cfg.APIs.IslamHouse, cfg.App.IsProduction(), catalogCache, log)

	// --- Reminder delivery ---
	awsCfg := cfg.Integrations.AWS
	remCfg := reminder.Config{
		EmailEnabled: awsCfg.SES.Enabled,
		SMSEnabled:   awsCfg.SNS.Enabled,
		PushEnabled:  awsCfg.SNS.Enabled,
		FromEmail:    awsCfg.SES.FromEmail,
		SMSSenderID:  awsCfg.SNS.DefaultSMSSenderID,
	}
	var email reminder.EmailSender
	var publisher reminder.Publisher
	if awsCfg.SES.Enabled || awsCfg.SNS.Enabled {
		sdkCfg, err := aws.LoadConfig(ctx, awsCfg.Region)
		if err != nil {
			zapLog.Warn("aws config unavailable, reminder channels disabled", zap.Error(err))
		} else {
			if awsCfg.SES.Enabled {
				email = aws.NewSESClient(sdkCfg)
			}
			if awsCfg.SNS.Enabled {
				publisher = aws.NewSNSClient(sdkCfg)
			}
		}
	}
	a.Reminders = reminder.NewDispatcher(remCfg, email, publisher, db, log)

	zapLog.Info("services initialized",
		zap.Int("searchers", len(searchers)),
		zap.Bool("cache", catalogCache != nil),
		zap.Bool("l2", l2 != nil),
		zap.String("catalogBaseURL", a.Catalog.BaseURL()),
	)
	return a, nil
}

// Close releases every connection Build opened, in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.zap.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
