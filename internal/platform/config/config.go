package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModeDev     = "dev"
	ModeRelease = "release"

	DefaultPath = "config/config.yaml"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type DashboardConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Version     string          `yaml:"version"`
	Mode        string          `yaml:"mode"`
	Server      ServerConfig    `yaml:"server"`
	DB          DatabaseConfig  `yaml:"database"`
	Certificate Certs           `yaml:"certificate"`
	Auth        AuthConfig      `yaml:"auth"`
	CORS        CORSConfig      `yaml:"cors"`
	Dashboard   DashboardConfig `yaml:"dashboard"`
	Log         LogConfig       `yaml:"log"`
}

// Load は YAML を読み、.env と環境変数で上書きしてから検証する。
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// .env は無くてもよい
	_ = godotenv.Load()

	cfg, err := Parse(buf)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Parse(buf []byte) (*Config, error) {
	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDev
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8443"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Dashboard.RefreshInterval <= 0 {
		c.Dashboard.RefreshInterval = 15 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"http://localhost:3000"}
	}
}

// 秘匿値は設定ファイルに書かず環境変数で渡す
func (c *Config) applyEnv() {
	if v := os.Getenv("PANTRY_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("PANTRY_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PANTRY_DB_HOST"); v != "" {
		c.DB.Host = v
	}
	if v := os.Getenv("PANTRY_DB_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DB.Port = n
		}
	}
	if v := os.Getenv("PANTRY_DB_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("PANTRY_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDev, ModeRelease, c.Mode)
	}
	if c.DB.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Auth.JWTSecret == "" {
		if c.Mode == ModeRelease {
			return errors.New("auth.jwt_secret (or PANTRY_JWT_SECRET) is required in release mode")
		}
		c.Auth.JWTSecret = "dev-only-secret-change-me"
	}
	if c.Mode == ModeRelease && len(c.Auth.JWTSecret) < 16 {
		return errors.New("auth.jwt_secret must be at least 16 bytes")
	}
	return nil
}

// TLS 証明書が設定されていれば HTTPS で待ち受ける
func (c *Config) TLSFiles() (cert, key string, ok bool) {
	if c.Certificate.Cert == "" || c.Certificate.Key == "" {
		return "", "", false
	}
	return fmt.Sprintf("config/tls/%s/%s", c.Mode, c.Certificate.Cert),
		fmt.Sprintf("config/tls/%s/%s", c.Mode, c.Certificate.Key), true
}
