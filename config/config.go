// Package config holds the process configuration, read once from the
// environment at start and passed to the components that need it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo     = "mongo"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// MinBcryptCost is the lowest password hashing cost the server accepts.
const MinBcryptCost = 10

type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	StoreDriver    string        `env:"STORE_DRIVER" envDefault:"mongo"`
	StoreTimeout   time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`
	MongoURI       string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase  string        `env:"MONGODB_DATABASE" envDefault:"taskflow"`
	FirebaseCreds  string        `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseProjID string        `env:"FIREBASE_PROJECT_ID"`

	BreakerMaxFailures uint32        `env:"BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"BREAKER_OPEN_TIMEOUT" envDefault:"10s"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTTTL           time.Duration `env:"JWT_TTL" envDefault:"168h"`
	AdminInviteToken string        `env:"ADMIN_INVITE_TOKEN"`
	BcryptCost       int           `env:"BCRYPT_COST" envDefault:"10"`

	DefaultProfileImageURL string `env:"DEFAULT_PROFILE_IMAGE_URL" envDefault:"/uploads/default-avatar.png"`
	UploadsDir             string `env:"UPLOADS_DIR" envDefault:"uploads"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"LOG_FILE"`
	LogMaxSizeMB int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	ExposeErrors bool   `env:"EXPOSE_ERRORS" envDefault:"false"`

	RecaptchaProjectID   string  `env:"RECAPTCHA_PROJECT_ID"`
	RecaptchaSiteKey     string  `env:"RECAPTCHA_SITE_KEY"`
	RecaptchaCredentials string  `env:"RECAPTCHA_CREDENTIALS"`
	RecaptchaMinScore    float32 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
}

// Load reads an optional .env file and then parses the environment.
// A missing .env is not an error; the process environment wins over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads the environment into a Config without validating it.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required for the mongo store"))
		}
	case DriverFirestore:
		if c.FirebaseProjID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the firestore store"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.BcryptCost < MinBcryptCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be at least %d", MinBcryptCost))
	}
	return errors.Join(errs...)
}

// CaptchaEnabled reports whether registration is guarded by reCAPTCHA.
func (c *Config) CaptchaEnabled() bool {
	return c.RecaptchaProjectID != "" && c.RecaptchaSiteKey != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
