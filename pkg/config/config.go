package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "reloop"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	JWT      JWTConfig
	Password PasswordConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RELOOP_APP_ENV" default:"dev"`
	Port         string `envconfig:"RELOOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RELOOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RELOOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type JWTConfig struct {
	Secret            string `envconfig:"RELOOP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RELOOP_JWT_ISSUER" default:"reloop"`
	ExpirationMinutes int    `envconfig:"RELOOP_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// Expiration returns the access token TTL.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	MinLength        int `envconfig:"RELOOP_PASSWORD_MIN_LENGTH" default:"6"`
	ArgonMemoryKB    int `envconfig:"RELOOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RELOOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RELOOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RELOOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RELOOP_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RELOOP_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
