package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	SMTP     SMTPConfig     `env:",prefix=SMTP_"`
	App      AppConfig      `env:",prefix=APP_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host          string `env:"HOST,default=localhost"`
	Port          string `env:"PORT,default=5432"`
	User          string `env:"USER,default=account_service"`
	Password      string `env:"PASSWORD,default=account_service_password"`
	DBName        string `env:"DB,default=account_service_db"`
	SSLMode       string `env:"SSLMODE,default=disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR,default=migrations"`
}

type SMTPConfig struct {
	Host       string `env:"HOST,default=smtp.gmail.com"`
	Port       int    `env:"PORT,default=587"`
	Username   string `env:"USERNAME"`
	Password   string `env:"PASSWORD"`
	From       string `env:"FROM,default=noreply@locationtracker.com"`
	SenderName string `env:"SENDER_NAME,default=Live Location Tracker"`
}

type AppConfig struct {
	// BaseURL is the public URL that verification links point back to.
	BaseURL         string   `env:"BASE_URL,default=http://localhost:8080"`
	VerificationTTL Duration `env:"VERIFICATION_TTL,default=24h"`
}

type SecurityConfig struct {
	BCryptCost int `env:"BCRYPT_COST,default=12"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000,http://localhost:5173"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if config.App.VerificationTTL.Duration <= 0 {
		return nil, fmt.Errorf("APP_VERIFICATION_TTL must be positive")
	}

	return &config, nil
}
