package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs every issued credential. The process refuses to start
	// without one outside development.
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL, default=60m"`
	AdminToken string        `env:"SHOP_ADMIN_TOKEN"`

	Kakao KakaoConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type KakaoConfig struct {
	ClientID    string        `env:"KAKAO_CLIENT_ID"`
	RedirectURI string        `env:"KAKAO_REDIRECT_URI, default=http://localhost:8080/api/user/kakao/callback"`
	TokenURL    string        `env:"KAKAO_TOKEN_URL"`
	ProfileURL  string        `env:"KAKAO_PROFILE_URL"`
	Timeout     time.Duration `env:"KAKAO_TIMEOUT, default=5s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=selectshop"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
