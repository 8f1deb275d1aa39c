package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Grader   GraderConfig   `yaml:"grader"`
	Learning LearningConfig `yaml:"learning"`
	Stats    StatsConfig    `yaml:"stats"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-User-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps requests per client IP; 0 disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"240"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// GraderConfig holds settings for the LLM grading provider.
// The provider speaks the OpenAI chat-completions wire format, so BaseURL
// may point at any compatible endpoint (OpenAI, Ollama, vLLM, a proxy).
type GraderConfig struct {
	BaseURL       string        `yaml:"base_url"       env:"GRADER_BASE_URL"       env-default:"https://api.openai.com/v1"`
	APIKey        string        `yaml:"api_key"        env:"GRADER_API_KEY"`
	Model         string        `yaml:"model"          env:"GRADER_MODEL"          env-default:"gpt-4o-mini"`
	Timeout       time.Duration `yaml:"timeout"        env:"GRADER_TIMEOUT"        env-default:"20s"`
	RetryAttempts int           `yaml:"retry_attempts" env:"GRADER_RETRY_ATTEMPTS" env-default:"2"`
	Temperature   float64       `yaml:"temperature"    env:"GRADER_TEMPERATURE"    env-default:"0.3"`
}

// LearningConfig holds card-mastery and review-scheduling parameters.
type LearningConfig struct {
	DueLimitDefault        int  `yaml:"due_limit_default"         env:"LEARNING_DUE_LIMIT_DEFAULT"         env-default:"50"`
	DueLimitMax            int  `yaml:"due_limit_max"             env:"LEARNING_DUE_LIMIT_MAX"             env-default:"200"`
	ClearMasteredOnRegress bool `yaml:"clear_mastered_on_regress" env:"LEARNING_CLEAR_MASTERED_ON_REGRESS" env-default:"false"`
}

// StatsConfig holds learning-statistics parameters.
type StatsConfig struct {
	Timezone           string `yaml:"timezone"             env:"STATS_TIMEZONE"             env-default:"UTC"`
	WeekTarget         int    `yaml:"week_target"          env:"STATS_WEEK_TARGET"          env-default:"30"`
	StreakLookbackDays int    `yaml:"streak_lookback_days" env:"STATS_STREAK_LOOKBACK_DAYS" env-default:"30"`
	TrendDays          int    `yaml:"trend_days"           env:"STATS_TREND_DAYS"           env-default:"7"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
