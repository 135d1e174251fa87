package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config agrupa la configuración del API y del CLI de agenda.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Upload   UploadConfig   `yaml:"upload"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Client   ClientConfig   `yaml:"client"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig: DSN vacío => repos in-memory (modo dev).
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DB_DSN"`
}

// RedisConfig: URL vacía => sesiones in-memory.
type RedisConfig struct {
	URL      string `yaml:"url"      env:"REDIS_URL"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB" env-default:"0"`
}

type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"PETTRACKR_SESSION"`
	TTL        time.Duration `yaml:"ttl"         env:"SESSION_TTL"         env-default:"24h"`
	Secure     bool          `yaml:"secure"      env:"SESSION_SECURE"      env-default:"false"`
}

type UploadConfig struct {
	Dir      string `yaml:"dir"       env:"UPLOAD_DIR"       env-default:"./uploads"`
	MaxBytes int64  `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"5242880"`
}

type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"http://localhost:5173,http://localhost:3000"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,Accept"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"3600"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app"    env:"APP_NAME"   env-default:"pettrackr"`
}

// ClientConfig es lo que usa el CLI de agenda para hablar con el API.
type ClientConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"PETTRACKR_URL"             env-default:"http://localhost:8080"`
	Timeout        time.Duration `yaml:"timeout"         env:"PETTRACKR_TIMEOUT"         env-default:"10s"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"   env:"PETTRACKR_FETCH_TIMEOUT"   env-default:"5s"`
	MaxConcurrency int           `yaml:"max_concurrency" env:"PETTRACKR_MAX_CONCURRENCY" env-default:"8"`
}

// Load lee config desde .env (si existe), YAML opcional (CONFIG_PATH) y env.
// Prioridad: ENV > YAML > env-default.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		errs = append(errs, errors.New("session.cookie_name required"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("upload.max_bytes must be positive"))
	}
	if c.Client.MaxConcurrency < 0 {
		errs = append(errs, errors.New("client.max_concurrency must be >= 0"))
	}

	return errors.Join(errs...)
}

// Address devuelve host:port para http.Server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Origins separa CORS_ALLOWED_ORIGINS.
func (c CORSConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Default arma la config solo con env + env-default, sin .env ni YAML.
// La usan los tests y el router cuando no recibe config.
func Default() *Config {
	var cfg Config
	_ = cleanenv.ReadEnv(&cfg)
	return &cfg
}
