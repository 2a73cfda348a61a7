package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is where the list-storage API listens during local development.
const DefaultAPIBaseURL = "http://localhost:8000"

// Config is the process-wide configuration. It is loaded once at startup and
// passed down explicitly.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Server ServerConfig `yaml:"server"`
	GUI    GUIConfig    `yaml:"gui"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig configures the client side of the list-storage API.
type APIConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
}

// ServerConfig configures the list-storage API server.
type ServerConfig struct {
	Addr           string   `yaml:"addr" validate:"required"`
	Store          string   `yaml:"store" validate:"oneof=memory json bolt"`
	DataDir        string   `yaml:"data_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// WriteRate limits POST /api/names to this many requests per second.
	// Zero disables limiting.
	WriteRate float64 `yaml:"write_rate" validate:"gte=0"`
}

// GUIConfig configures the HTML form server.
type GUIConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	// File, when set, receives log output instead of stderr.
	File string `yaml:"file"`
}

var configValidate = validator.New()

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{BaseURL: DefaultAPIBaseURL},
		Server: ServerConfig{
			Addr:           ":8000",
			Store:          "memory",
			DataDir:        GetDataDir(),
			AllowedOrigins: []string{"*"},
		},
		GUI: GUIConfig{Addr: ":8081"},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig builds a Config from defaults, the optional YAML file at path
// and HELLONAMES_* environment variables, in that order. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HELLONAMES_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("HELLONAMES_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HELLONAMES_STORE"); v != "" {
		cfg.Server.Store = v
	}
	if v := os.Getenv("HELLONAMES_DATA_DIR"); v != "" {
		cfg.Server.DataDir = v
	}
	if v := os.Getenv("HELLONAMES_GUI_ADDR"); v != "" {
		cfg.GUI.Addr = v
	}
	if v := os.Getenv("HELLONAMES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("HELLONAMES_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// GetProjectRoot returns the absolute path to the project root directory.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "." // fallback
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "." // fallback
}

// GetDataDir returns the default directory for file-backed name stores.
func GetDataDir() string {
	return filepath.Join(GetProjectRoot(), "data")
}
