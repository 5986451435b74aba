package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"ShopSight"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Store struct {
		// Backend selects where records live: "flatfile" or "postgres".
		Backend string `envconfig:"STORE_BACKEND" default:"flatfile"`
		Dir     string `envconfig:"STORE_DIR" default:"./data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"shopsight"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" default:"dev-secret-change-me"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Admin struct {
		Username string `envconfig:"ADMIN_USERNAME" default:"admin"`
		Password string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	}

	Analytics struct {
		LowMargin    float64 `envconfig:"ANALYTICS_LOW_MARGIN" default:"20"`
		HighMargin   float64 `envconfig:"ANALYTICS_HIGH_MARGIN" default:"40"`
		DebtRatio    float64 `envconfig:"ANALYTICS_DEBT_RATIO" default:"0.3"`
		GrowthRatio  float64 `envconfig:"ANALYTICS_GROWTH_RATIO" default:"1.2"`
		DeclineRatio float64 `envconfig:"ANALYTICS_DECLINE_RATIO" default:"0.8"`
		LowStock     int     `envconfig:"ANALYTICS_LOW_STOCK" default:"10"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
