package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/hragentic/hr-gateway/internal/core/domain"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL     time.Duration `env:"TOKEN_TTL,            default=168h"`
	ProxyTimeout time.Duration `env:"PROXY_TIMEOUT,        default=120s"`
	ProbeTimeout time.Duration `env:"HEALTH_PROBE_TIMEOUT, default=5s"`
	FrontendURL  string        `env:"FRONTEND_URL,         default=http://localhost:3000"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Services  ServicesConfig
}

type MongoConfig struct {
	// URI has no default on purpose: the gateway refuses to start without
	// its identity store.
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=hr_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=15m"`
	Max    int           `env:"RATE_LIMIT_MAX,    default=100"`
}

// ServicesConfig holds the base URL of every domain peer.
type ServicesConfig struct {
	FAQ         string `env:"FAQ_SERVICE_URL,         default=http://faq-service:8002"`
	Payroll     string `env:"PAYROLL_SERVICE_URL,     default=http://payroll-service:8003"`
	Leave       string `env:"LEAVE_SERVICE_URL,       default=http://leave-service:8004"`
	Recruitment string `env:"RECRUITMENT_SERVICE_URL, default=http://recruitment-service:8005"`
	Performance string `env:"PERFORMANCE_SERVICE_URL, default=http://performance-service:8006"`
	Coordinator string `env:"COORDINATOR_SERVICE_URL, default=http://coordinator-service:8007"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Registry builds the immutable service registry from the configured peer
// URLs. Each peer is mounted under /api/<name>.
func (c *Config) Registry() *domain.Registry {
	peers := []struct {
		name string
		url  string
	}{
		{"faq", c.Services.FAQ},
		{"payroll", c.Services.Payroll},
		{"leave", c.Services.Leave},
		{"recruitment", c.Services.Recruitment},
		{"performance", c.Services.Performance},
		{"coordinator", c.Services.Coordinator},
	}

	entries := make([]domain.ServiceEntry, 0, len(peers))
	for _, p := range peers {
		entries = append(entries, domain.ServiceEntry{
			Name:       p.name,
			BaseURL:    p.url,
			PathPrefix: "/api/" + p.name,
		})
	}
	return domain.NewRegistry(entries)
}
