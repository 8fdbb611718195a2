package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	AppPort    int    `envconfig:"APP_PORT"     default:"3000"`
	DBHost     string `envconfig:"DB_HOST"      default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT"      default:"5432"`
	DBName     string `envconfig:"DB_NAME"      default:"goshortly"`
	DBUser     string `envconfig:"DB_USER"      default:"goshortly"`
	DBPassword string `envconfig:"DB_PASSWORD"  default:"goshortly"`

	CacheEngine string `envconfig:"CACHE_ENGINE" default:"inmemory"`
	CacheHost   string `envconfig:"CACHE_HOST"   default:"localhost"`
	CachePort   int    `envconfig:"CACHE_PORT"   default:"6379"`

	// BaseUrl is the public origin rendered in front of short codes.
	BaseUrl string `envconfig:"BASE_URL" default:"http://localhost:3000"`

	// JWTSecret has no default on purpose: starting without a signing key is
	// a fatal configuration error.
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL"  default:"24h"`
}

func Process() (env Env, err error) {
	err = envconfig.Process("", &env)
	return
}
