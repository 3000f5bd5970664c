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

// Config is the full runtime configuration. Values are layered: defaults,
// then the optional YAML file, then SURVEYMATCH_* environment variables.
type Config struct {
	Addr       string           `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Model      ModelConfig      `yaml:"model"`
	Population PopulationConfig `yaml:"population"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Redis      RedisConfig      `yaml:"redis"`
	Match      MatchConfig      `yaml:"match"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ModelConfig locates the fitted model artifact <Dir>/<Name>.json.
type ModelConfig struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

// PopulationConfig selects the reference population backend. A non-empty
// PostgresDSN wins over Path.
type PopulationConfig struct {
	Path        string `yaml:"path"`
	Delimiter   string `yaml:"delimiter"`
	PostgresDSN string `yaml:"postgres_dsn"`
	Table       string `yaml:"table"`
}

// CatalogConfig selects the cluster catalog backend. A non-empty RedisKey
// reads the catalog from Redis (Redis.URL must then be set).
type CatalogConfig struct {
	Path     string `yaml:"path"`
	RedisKey string `yaml:"redis_key"`
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// MatchConfig tunes match passes. MatchOn names the attributes similar
// persons must share; empty keeps fav_place and gender.
type MatchConfig struct {
	SimilarLimit int      `yaml:"similar_limit"`
	MatchOn      []string `yaml:"match_on"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Addr:       ":8080",
		Log:        LogConfig{Level: "info", Format: "json"},
		Model:      ModelConfig{Dir: "data", Name: "welcome_survey_clustering_pipeline_v2"},
		Population: PopulationConfig{Path: "data/welcome_survey_simple_v2.csv", Delimiter: ";"},
		Catalog:    CatalogConfig{Path: "data/welcome_survey_cluster_names_and_descriptions_v2.json"},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Match: MatchConfig{SimilarLimit: 5},
	}
}

// Load builds the configuration. An empty path skips the file layer; a path
// that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config file %s does not exist", path)
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str(&cfg.Addr, "SURVEYMATCH_ADDR")
	str(&cfg.Log.Level, "SURVEYMATCH_LOG_LEVEL")
	str(&cfg.Log.Format, "SURVEYMATCH_LOG_FORMAT")
	str(&cfg.Model.Dir, "SURVEYMATCH_MODEL_DIR")
	str(&cfg.Model.Name, "SURVEYMATCH_MODEL_NAME")
	str(&cfg.Population.Path, "SURVEYMATCH_POPULATION_PATH")
	str(&cfg.Population.Delimiter, "SURVEYMATCH_POPULATION_DELIMITER")
	str(&cfg.Population.PostgresDSN, "SURVEYMATCH_POSTGRES_DSN")
	str(&cfg.Population.Table, "SURVEYMATCH_POSTGRES_TABLE")
	str(&cfg.Catalog.Path, "SURVEYMATCH_CATALOG_PATH")
	str(&cfg.Catalog.RedisKey, "SURVEYMATCH_CATALOG_REDIS_KEY")
	str(&cfg.Redis.URL, "SURVEYMATCH_REDIS_URL")

	if v := strings.TrimSpace(os.Getenv("SURVEYMATCH_SIMILAR_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SURVEYMATCH_SIMILAR_LIMIT: %w", err)
		}
		cfg.Match.SimilarLimit = n
	}
	if v := strings.TrimSpace(os.Getenv("SURVEYMATCH_MATCH_ON")); v != "" {
		cfg.Match.MatchOn = strings.Split(v, ",")
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Model.Dir == "" || c.Model.Name == "" {
		return errors.New("model dir and name are required")
	}
	if c.Population.PostgresDSN == "" && c.Population.Path == "" {
		return errors.New("population path or postgres dsn is required")
	}
	if c.Catalog.RedisKey == "" && c.Catalog.Path == "" {
		return errors.New("catalog path or redis key is required")
	}
	if c.Catalog.RedisKey != "" && c.Redis.URL == "" {
		return errors.New("redis url is required when the catalog is read from redis")
	}
	if len([]rune(c.Population.Delimiter)) > 1 {
		return fmt.Errorf("population delimiter %q must be a single character", c.Population.Delimiter)
	}
	if c.Match.SimilarLimit < 0 {
		return errors.New("similar limit cannot be negative")
	}
	return nil
}

// DelimiterRune returns the configured CSV delimiter, or 0 to let the reader
// pick one from the file extension.
func (p PopulationConfig) DelimiterRune() rune {
	for _, r := range p.Delimiter {
		return r
	}
	return 0
}
