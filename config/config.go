package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"webauth/pkg/config"
)

type Config struct {
	DB     config.DBConfig     `yaml:"db"`
	Server config.ServerConfig `yaml:"server"`
	Auth   config.AuthConfig   `yaml:"auth"`
	Log    config.LogConfig    `yaml:"log"`
}

// Load reads the YAML file at path, loads secrets.env from the same
// directory, applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	if err := config.LoadSecrets(filepath.Dir(path)); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// environment wins over the file
	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideAuthFromEnv(&cfg.Auth)
	config.OverrideLogFromEnv(&cfg.Log)

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
	if c.DB.MaxConns == 0 {
		c.DB.MaxConns = 10
	}
	if c.DB.MinConns == 0 {
		c.DB.MinConns = 2
	}
	if c.DB.SlowQueryThreshold == 0 {
		c.DB.SlowQueryThreshold = 100 * time.Millisecond
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = bcrypt.DefaultCost
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.DB.Host == "" || c.DB.Name == "" || c.DB.User == "" {
		return fmt.Errorf("db host, name and user are required")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	if c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("db.min_conns (%d) exceeds db.max_conns (%d)", c.DB.MinConns, c.DB.MaxConns)
	}
	return nil
}
