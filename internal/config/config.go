package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
)

// Config stores runtime configuration for the rotation tools.
type Config struct {
	AppEnv                  string `validate:"oneof=dev stage prod"`
	ServiceName             string `validate:"required"`
	LogLevel                logging.Level
	LogFormat               string `validate:"oneof=json console"`
	DataSource              string `validate:"oneof=memory postgres"`
	SeasonFile              string
	DBURL                   string `validate:"required_if=DataSource postgres"`
	DBDisablePreparedBinary bool
	DBBootstrapSeed         bool
	RulesFile               string
	CacheEnabled            bool
	CacheTTL                time.Duration `validate:"gt=0"`
	ValidateMaxWorkers      int           `validate:"gte=1,lte=64"`
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	DataSourceMemory   = "memory"
	DataSourcePostgres = "postgres"
)

func Load() (Config, error) {
	env := envReader{lookup: os.LookupEnv}

	appEnv := env.lower("APP_ENV", EnvDev)
	if appEnv != EnvDev && appEnv != EnvStage && appEnv != EnvProd {
		return Config{}, fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", appEnv, EnvDev, EnvStage, EnvProd)
	}
	logFormat := LogFormatConsole
	if appEnv == EnvProd {
		logFormat = LogFormatJSON
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             env.str("APP_SERVICE_NAME", "rotation-engine"),
		LogLevel:                parseLogLevel(env.lower("APP_LOG_LEVEL", "info")),
		LogFormat:               env.lower("APP_LOG_FORMAT", logFormat),
		DataSource:              env.lower("DATA_SOURCE", DataSourceMemory),
		SeasonFile:              env.str("SEASON_FILE", ""),
		DBURL:                   env.str("DB_URL", ""),
		DBDisablePreparedBinary: env.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true),
		DBBootstrapSeed:         env.boolean("DB_BOOTSTRAP_SEED", false),
		RulesFile:               env.str("RULES_FILE", ""),
		CacheEnabled:            env.boolean("CACHE_ENABLED", true),
		CacheTTL:                env.duration("CACHE_TTL", time.Minute),
		ValidateMaxWorkers:      env.integer("VALIDATE_MAX_WORKERS", 4),
	}
	if err := errors.Join(env.errs...); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch v {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// envReader reads trimmed variables, treating blank as unset, and collects
// parse errors so one bad value does not hide the next.
type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) str(key, fallback string) string {
	v, ok := e.lookup(key)
	if v = strings.TrimSpace(v); !ok || v == "" {
		return fallback
	}
	return v
}

func (e *envReader) lower(key, fallback string) string {
	return strings.ToLower(e.str(key, fallback))
}

func (e *envReader) boolean(key string, fallback bool) bool {
	return parseEnv(e, key, fallback, strconv.ParseBool)
}

func (e *envReader) integer(key string, fallback int) int {
	return parseEnv(e, key, fallback, strconv.Atoi)
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	return parseEnv(e, key, fallback, time.ParseDuration)
}

func parseEnv[T any](e *envReader, key string, fallback T, parse func(string) (T, error)) T {
	raw := e.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("parse %s: %w", key, err))
		return fallback
	}
	return v
}
