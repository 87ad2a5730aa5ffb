package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-dentlab/internal/common"
	"github.com/noah-isme/backend-dentlab/internal/config"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/db/migrations"
	"github.com/noah-isme/backend-dentlab/internal/health"
	"github.com/noah-isme/backend-dentlab/internal/obs"
)

const applicationName = "dentlab-api"

// Dependencies holds the process-wide clients shared by every module.
// Redis is nil when REDIS_URL is unset.
type Dependencies struct {
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Queries   dbgen.Querier
	Validator *validator.Validate
	Logger    zerolog.Logger
}

// OpenOptions toggles the optional instrumentation applied by Open.
type OpenOptions struct {
	RedisMetrics bool
}

// Open connects to Postgres and, when configured, Redis.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts OpenOptions) (*Dependencies, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	deps := &Dependencies{
		DB:        pool,
		Queries:   dbgen.New(pool),
		Validator: common.NewValidator(),
		Logger:    logger,
	}

	if !cfg.RedisEnabled() {
		logger.Warn().Msg("REDIS_URL not set; caching, idempotency and export throttling disabled")
		return deps, nil
	}
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if opts.RedisMetrics {
		if err := redisotel.InstrumentMetrics(client); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		pool.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	deps.Redis = client
	return deps, nil
}

// Migrate applies pending schema migrations and logs the resulting version.
func Migrate(cfg *config.Config, logger zerolog.Logger) error {
	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return err
	}
	version, dirty, err := migrations.Version(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema migrated")
	return nil
}

// Close releases the connections opened by Open.
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error().Err(err).Msg("close redis")
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}

// PingDB implements health.Checker.
func (d *Dependencies) PingDB(ctx context.Context, timeout time.Duration) error {
	if d.DB == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.DB.Ping(ctx)
}

// PingRedis implements health.Checker. An unconfigured Redis reports as disabled.
func (d *Dependencies) PingRedis(ctx context.Context, timeout time.Duration) error {
	if d.Redis == nil {
		return health.ErrDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.Redis.Ping(ctx).Err()
}
