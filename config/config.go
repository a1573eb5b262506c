package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	LogLevel string
	Server   Server
	Database Database
	Redis    Redis
	Gemini   Gemini
	Cache    Cache
	Progress Progress
	Jobs     Jobs
}

type Server struct {
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Gemini struct {
	ApiKey  string `json:"-"`
	Model   string
	Timeout time.Duration
}

type Cache struct {
	FeedbackTTL time.Duration
	QuestionTTL time.Duration
}

type Progress struct {
	TimeZone    string
	MaxAttempts int
}

type Jobs struct {
	CacheSweepSchedule string
	ReconcileSchedule  string
	ReconcileGrace     time.Duration
}

// IsProduction reports whether raw error messages must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves the progress time zone, falling back to UTC when the name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Progress.TimeZone)
	if err != nil {
		log.Warn().Err(err).Str("time_zone", c.Progress.TimeZone).Msg("Unknown progress time zone, using UTC")
		return time.UTC
	}
	return loc
}

// splitList reads a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("LLM_TIMEOUT", "25s")
	viper.SetDefault("FEEDBACK_CACHE_TTL", "30m")
	viper.SetDefault("QUESTION_CACHE_TTL", "10m")
	viper.SetDefault("PROGRESS_TIMEZONE", "UTC")
	viper.SetDefault("PROGRESS_MAX_ATTEMPTS", 10)
	viper.SetDefault("CACHE_SWEEP_SCHEDULE", "@every 5m")
	viper.SetDefault("RECONCILE_SCHEDULE", "@every 10m")
	viper.SetDefault("RECONCILE_GRACE", "2m")
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.AppEnv = viper.GetString("APP_ENV")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.RequestTimeout = viper.GetDuration("REQUEST_TIMEOUT")
	config.Server.AllowOrigins = splitList(viper.GetString("CORS_ALLOW_ORIGINS"))

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")
	config.Gemini.Timeout = viper.GetDuration("LLM_TIMEOUT")

	config.Cache.FeedbackTTL = viper.GetDuration("FEEDBACK_CACHE_TTL")
	config.Cache.QuestionTTL = viper.GetDuration("QUESTION_CACHE_TTL")

	config.Progress.TimeZone = viper.GetString("PROGRESS_TIMEZONE")
	config.Progress.MaxAttempts = viper.GetInt("PROGRESS_MAX_ATTEMPTS")

	config.Jobs.CacheSweepSchedule = viper.GetString("CACHE_SWEEP_SCHEDULE")
	config.Jobs.ReconcileSchedule = viper.GetString("RECONCILE_SCHEDULE")
	config.Jobs.ReconcileGrace = viper.GetDuration("RECONCILE_GRACE")

	log.Info().
		Str("env", config.AppEnv).
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Bool("redis", config.Redis.Addr != "").
		Bool("gemini", config.Gemini.ApiKey != "").
		Msg("Config loaded")
	return &config, nil

}
