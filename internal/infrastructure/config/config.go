package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	LLM      LLMConfig
	Fetcher  FetcherConfig
	AEO      AEOConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
}

type JWTConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
}

// LLMConfig configura o gateway de geração de texto
type LLMConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// FetcherConfig configura o download de páginas de terceiros
type FetcherConfig struct {
	Timeout           time.Duration
	ScanTimeout       time.Duration
	UserAgent         string
	BrowserUserAgent  string
	RequestsPerSecond float64
	MaxBodyBytes      int64
}

type AEOConfig struct {
	RescanAfter time.Duration
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Origins devolve a lista de origens permitidas, sem espaços
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

const minJWTSecretLength = 32

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "aeo_studio")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)

	v.SetDefault("JWT_ISSUER", "aeo-studio")
	v.SetDefault("JWT_ACCESS_TTL", "24h")

	v.SetDefault("LLM_MODEL", "claude-sonnet-4-5")
	v.SetDefault("LLM_MAX_TOKENS", 4096)

	v.SetDefault("FETCH_TIMEOUT", "15s")
	v.SetDefault("FETCH_SCAN_TIMEOUT", "8s")
	v.SetDefault("FETCH_USER_AGENT", "aeo-studio-bot/1.0 (+https://aeo.studio/bot)")
	v.SetDefault("FETCH_BROWSER_USER_AGENT",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	v.SetDefault("FETCH_REQUESTS_PER_SECOND", 2.0)
	v.SetDefault("FETCH_MAX_BODY_BYTES", 5<<20)

	v.SetDefault("AEO_RESCAN_AFTER", "24h")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// Load carrega as configurações do .env (opcional) e das variáveis de ambiente
func Load() (*Config, error) {
	// .env é opcional; variáveis já exportadas têm precedência
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("JWT_SECRET"),
			Issuer:    v.GetString("JWT_ISSUER"),
			AccessTTL: v.GetDuration("JWT_ACCESS_TTL"),
		},
		LLM: LLMConfig{
			APIKey:    v.GetString("ANTHROPIC_API_KEY"),
			Model:     v.GetString("LLM_MODEL"),
			MaxTokens: v.GetInt64("LLM_MAX_TOKENS"),
		},
		Fetcher: FetcherConfig{
			Timeout:           v.GetDuration("FETCH_TIMEOUT"),
			ScanTimeout:       v.GetDuration("FETCH_SCAN_TIMEOUT"),
			UserAgent:         v.GetString("FETCH_USER_AGENT"),
			BrowserUserAgent:  v.GetString("FETCH_BROWSER_USER_AGENT"),
			RequestsPerSecond: v.GetFloat64("FETCH_REQUESTS_PER_SECOND"),
			MaxBodyBytes:      v.GetInt64("FETCH_MAX_BODY_BYTES"),
		},
		AEO: AEOConfig{
			RescanAfter: v.GetDuration("AEO_RESCAN_AFTER"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	return config, nil
}

// IsProduction indica se o ambiente é de produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate verifica as configurações obrigatórias
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must have at least %d characters", minJWTSecretLength)
	}
	if c.IsProduction() && c.LLM.APIKey == "" {
		return errors.New("ANTHROPIC_API_KEY is required in production")
	}
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL must be positive")
	}
	if c.Fetcher.RequestsPerSecond <= 0 {
		return errors.New("FETCH_REQUESTS_PER_SECOND must be positive")
	}
	return nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
