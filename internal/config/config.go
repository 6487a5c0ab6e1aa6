package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBase    = "https://106d32a5.whereami-5kp.pages.dev"
	DefaultUploadBase = "https://geo.cmxu.io"
	DefaultCommonsAPI = "https://commons.wikimedia.org/w/api.php"
)

// Config holds the settings shared by the batch jobs
type Config struct {
	APIBase    string `yaml:"apiBase" validate:"required,url"`
	UploadBase string `yaml:"uploadBase" validate:"required,url"`
	AuthToken  string `yaml:"authToken"`
	CommonsAPI string `yaml:"commonsApi" validate:"required,url"`
	UserAgent  string `yaml:"userAgent" validate:"required"`

	SearchConcurrency int `yaml:"searchConcurrency" validate:"min=1"`
	UploadConcurrency int `yaml:"uploadConcurrency" validate:"min=1"`
	SearchLimit       int `yaml:"searchLimit" validate:"min=1"`
	PageSize          int `yaml:"pageSize" validate:"min=1"`

	DeleteDelay    time.Duration `yaml:"deleteDelay" validate:"gte=0"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"gt=0"`
	UploadTimeout  time.Duration `yaml:"uploadTimeout" validate:"gt=0"`

	MaxDimension int `yaml:"maxDimension" validate:"min=1"`
	MaxFileSize  int `yaml:"maxFileSize" validate:"min=1"`

	// requests per second against Commons, 0 disables limiting
	CommonsRate float64 `yaml:"commonsRate" validate:"gte=0"`
	CacheDir    string  `yaml:"cacheDir"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		APIBase:           DefaultAPIBase,
		UploadBase:        DefaultUploadBase,
		CommonsAPI:        DefaultCommonsAPI,
		UserAgent:         "WikiCommons Landmark Image Finder/1.0",
		SearchConcurrency: 5,
		UploadConcurrency: 3,
		SearchLimit:       10,
		PageSize:          1000,
		DeleteDelay:       100 * time.Millisecond,
		RequestTimeout:    30 * time.Second,
		UploadTimeout:     60 * time.Second,
		MaxDimension:      2048,
		MaxFileSize:       5 * 1024 * 1024,
	}
}

// Load builds a Config from defaults, an optional YAML file and the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WHEREAMI_API_BASE"); v != "" {
		c.APIBase = v
	}
	if v := os.Getenv("WHEREAMI_UPLOAD_BASE"); v != "" {
		c.UploadBase = v
	}
	if v := os.Getenv("WHEREAMI_AUTH_TOKEN"); v != "" {
		c.AuthToken = v
	}
	if v := os.Getenv("WHEREAMI_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
