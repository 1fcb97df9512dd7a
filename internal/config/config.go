package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/todolist/internal/seed"
	"gopkg.in/yaml.v3"
)

const (
	appDir         = ".todolist"
	configFileName = "config.yaml"
)

type Config struct {
	DBPath      string        `yaml:"db_path"`
	SeedEnabled bool          `yaml:"seed_enabled"`
	SeedURL     string        `yaml:"seed_url"`
	SeedTimeout time.Duration `yaml:"seed_timeout"`

	LogLevel   string `yaml:"log_level"`   // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file"`    // empty disables file logging
	LogConsole bool   `yaml:"log_console"` // mirror logs to stderr; off so the TUI stays clean
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dbPath := "tasks.db"
	logPath := ""
	if home != "" {
		dbPath = filepath.Join(home, appDir, "tasks.db")
		logPath = filepath.Join(home, appDir, "logs", "todolist.log")
	}
	return &Config{
		DBPath:      dbPath,
		SeedEnabled: true,
		SeedURL:     seed.DefaultURL,
		SeedTimeout: seed.DefaultTimeout,
		LogLevel:    "INFO",
		LogFile:     logPath,
		LogConsole:  false,
	}
}

// DefaultPath returns ~/.todolist/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, appDir, configFileName), nil
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from TODOLIST_* variables. Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	if v, ok := getEnvString("TODOLIST_DB_PATH"); ok {
		c.DBPath = v
	}
	if v, ok := getEnvBool("TODOLIST_SEED_ENABLED"); ok {
		c.SeedEnabled = v
	}
	if v, ok := getEnvString("TODOLIST_SEED_URL"); ok {
		c.SeedURL = v
	}
	if v, ok := getEnvDuration("TODOLIST_SEED_TIMEOUT"); ok && v > 0 {
		c.SeedTimeout = v
	}
	if v, ok := getEnvString("TODOLIST_LOG_LEVEL"); ok {
		c.LogLevel = strings.ToUpper(v)
	}
	if v, ok := getEnvString("TODOLIST_LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := getEnvBool("TODOLIST_LOG_CONSOLE"); ok {
		c.LogConsole = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if c.SeedEnabled && strings.TrimSpace(c.SeedURL) == "" {
		return errors.New("config: seed_url is required when seeding is enabled")
	}
	if c.SeedTimeout < 0 {
		return errors.New("config: seed_timeout must not be negative")
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, true
	}
	// bare integers are seconds
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
