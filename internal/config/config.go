package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Provider   ProviderConfig   `yaml:"provider"`
	Tagger     TaggerConfig     `yaml:"tagger"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ProviderConfig holds generative-model provider settings. The API key is
// resolved here once at process start and injected into the client
// constructor; business logic never reads the environment itself.
type ProviderConfig struct {
	APIKey         string        `yaml:"api_key"         env:"PROVIDER_API_KEY"`
	BaseURL        string        `yaml:"base_url"        env:"PROVIDER_BASE_URL"`
	Model          string        `yaml:"model"           env:"PROVIDER_MODEL"           env-default:"gpt-4o-mini"`
	BatchSize      int           `yaml:"batch_size"      env:"PROVIDER_BATCH_SIZE"      env-default:"20"`
	MaxAttempts    int           `yaml:"max_attempts"    env:"PROVIDER_MAX_ATTEMPTS"    env-default:"3"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"   env:"PROVIDER_RETRY_BACKOFF"   env-default:"1s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"PROVIDER_REQUEST_TIMEOUT" env-default:"60s"`
}

// TaggerConfig holds settings for the linguistic model sidecar that
// tokenizes and tags Dutch text.
type TaggerConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"TAGGER_BASE_URL"        env-default:"http://localhost:8070"`
	Language       string        `yaml:"language"        env:"TAGGER_LANGUAGE"        env-default:"nl"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TAGGER_REQUEST_TIMEOUT" env-default:"30s"`
}

// VocabularyConfig holds extraction and deck settings.
type VocabularyConfig struct {
	MinLemmaLength int    `yaml:"min_lemma_length" env:"VOCAB_MIN_LEMMA_LENGTH" env-default:"2"`
	DeckNamePrefix string `yaml:"deck_name_prefix" env:"VOCAB_DECK_NAME_PREFIX" env-default:"Dutch Vocabulary"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
