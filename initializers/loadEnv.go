package initializers

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv         string   `envconfig:"APP_ENV" default:"development"`
	Port           string   `envconfig:"PORT" default:"5000"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:5000"`

	Database DatabaseConfig
	Auth     AuthConfig
	Square   SquareConfig
	SMTP     SMTPConfig
	S3       S3Config

	EnforceTotals bool          `envconfig:"ORDERS_ENFORCE_TOTALS" default:"false"`
	LabelDelay    time.Duration `envconfig:"SHIPPING_LABEL_DELAY" default:"1.5s"`
	SeedFile      string        `envconfig:"SEED_FILE" default:"seed/catalog.yaml"`
	LogoURL       string        `envconfig:"LOGO_URL"`
}

type DatabaseConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DB_DSN"`
}

type AuthConfig struct {
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
	AdminUsername string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL" default:"admin@justdrops.xyz"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD"`
}

type SquareConfig struct {
	AccessToken string        `envconfig:"SQUARE_ACCESS_TOKEN"`
	LocationID  string        `envconfig:"SQUARE_LOCATION_ID"`
	Environment string        `envconfig:"SQUARE_ENVIRONMENT" default:"sandbox"`
	Currency    string        `envconfig:"SQUARE_CURRENCY" default:"USD"`
	Timeout     time.Duration `envconfig:"SQUARE_TIMEOUT" default:"15s"`
}

type SMTPConfig struct {
	Address  string `envconfig:"SMTP_ADDRESS"`
	From     string `envconfig:"FROM_EMAIL"`
	Password string `envconfig:"FROM_EMAIL_PASSWORD"`
	Host     string `envconfig:"FROM_EMAIL_SMTP"`
}

type S3Config struct {
	Bucket string `envconfig:"S3_BUCKET"`
	Region string `envconfig:"S3_REGION" default:"us-east-1"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadEnv reads .env when present and then the process environment.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Printf("Configuration loaded for APP_ENV: %s", cfg.AppEnv)
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "memory", "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.Driver == "memory" && c.IsProduction() {
		return fmt.Errorf("DB_DRIVER=memory loses data on restart and is not allowed in production")
	}
	if c.Database.Driver != "memory" && c.Database.Driver != "sqlite" && c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required for DB_DRIVER=%s", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		log.Println("WARNING: JWT_SECRET not set, using an insecure development secret")
		c.Auth.JWTSecret = "justdrops-dev-secret"
	}
	if c.Auth.AdminPassword == "" && !c.IsProduction() {
		log.Println("WARNING: ADMIN_PASSWORD not set, the bootstrap admin uses the development password")
		c.Auth.AdminPassword = "admin123"
	}
	if c.IsProduction() && (c.Square.AccessToken == "" || c.Square.LocationID == "") {
		return fmt.Errorf("SQUARE_ACCESS_TOKEN and SQUARE_LOCATION_ID are required in production")
	}
	if c.Square.Environment != "sandbox" && c.Square.Environment != "production" {
		return fmt.Errorf("SQUARE_ENVIRONMENT must be sandbox or production, got %q", c.Square.Environment)
	}
	return nil
}
