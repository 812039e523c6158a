package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProdEnv = "production"
	DevEnv  = "development"
)

// Config holds all configuration for the application
type Config struct {
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	AWS      AWSConfig      `yaml:"aws"`
	Mail     MailConfig     `yaml:"mail"`
	Log      LogConfig      `yaml:"log"`
	SeedDB   bool           `yaml:"seed_db"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
	RateLimit   bool     `yaml:"rate_limit"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	URL        string `yaml:"url"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	SQLitePath string `yaml:"sqlite_path"`
}

type RedisConfig struct {
	URL  string `yaml:"url"`
	Addr string `yaml:"addr"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

type AWSConfig struct {
	Region   string `yaml:"region"`
	S3Bucket string `yaml:"s3_bucket"`
}

type MailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	From           string `yaml:"from"`
	ProductName    string `yaml:"product_name"`
	ProductLink    string `yaml:"product_link"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Env:    DevEnv,
		Server: ServerConfig{Port: "8080", CORSOrigins: []string{"http://localhost:3000"}, RateLimit: true},
		Database: DatabaseConfig{
			Driver:     "postgres",
			Port:       "5432",
			SSLMode:    "disable",
			SQLitePath: "diary.db",
		},
		JWT:  JWTConfig{TTLMinutes: 180},
		AWS:  AWSConfig{Region: "ap-northeast-2"},
		Mail: MailConfig{From: "no-reply@diary.local", ProductName: "Diary", ProductLink: "http://localhost:8080"},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads the optional YAML file at path on top of the defaults and then
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "APP_ENV")
	setString(&c.Server.Port, "PORT")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = splitCSV(origins)
	}
	if raw := os.Getenv("RATE_LIMIT"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q", raw)
		}
		c.Server.RateLimit = enabled
	}

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")

	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")

	setString(&c.JWT.Secret, "API_SECRET")
	if raw := os.Getenv("TOKEN_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", raw)
		}
		c.JWT.TTLMinutes = minutes
	}

	setString(&c.AWS.Region, "AWS_REGION")
	setString(&c.AWS.S3Bucket, "S3_BUCKET")

	setString(&c.Mail.SendGridAPIKey, "SENDGRID_API_KEY")
	setString(&c.Mail.From, "MAIL_FROM")

	setString(&c.Log.Level, "LOG_LEVEL")
	if raw := os.Getenv("SEED_DB"); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid SEED_DB %q", raw)
		}
		c.SeedDB = seed
	}
	return nil
}

func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, ProdEnv)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLMinutes) * time.Minute
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s password=%s",
		d.Host, d.Port, d.User, d.Name, d.SSLMode, d.Password)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
