package config

import (
	"fmt"
	"os"
	"time"

	"universe-builder/internal/shared/errors"
	"universe-builder/internal/utils"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Objects   ObjectsConfig   `yaml:"objects"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Frontend  FrontendConfig  `yaml:"frontend"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Admin     AdminConfig     `yaml:"admin"`
	Cache     CacheConfig     `yaml:"cache"`
	Redis     RedisConfig     `yaml:"redis"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type CatalogConfig struct {
	InputCSV string  `yaml:"input_csv"`
	RadiusLY float64 `yaml:"radius_ly"`
	MaxStars int     `yaml:"max_stars"`
	Scale    float64 `yaml:"scale"`
}

type ObjectsConfig struct {
	MaxPrimaries int   `yaml:"max_primaries"`
	Seed         int64 `yaml:"seed"`
	Workers      int   `yaml:"workers"`
}

type ArtifactsConfig struct {
	Rate float64 `yaml:"rate"`
}

type OutputConfig struct {
	Dir          string `yaml:"dir"`
	CatalogFile  string `yaml:"catalog_file"`
	MapFile      string `yaml:"map_file"`
	ObjectsFile  string `yaml:"objects_file"`
	ArtifactFile string `yaml:"artifact_file"`
	BundleFile   string `yaml:"bundle_file"`
	SummaryFile  string `yaml:"summary_file"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

type FrontendConfig struct {
	URL       string `yaml:"url"`
	CORSDebug bool   `yaml:"cors_debug"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
	TrustProxy        bool    `yaml:"trust_proxy"`
}

type AdminConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type CacheConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			RadiusLY: 50.0,
			MaxStars: 150,
			Scale:    1.0,
		},
		Objects: ObjectsConfig{
			MaxPrimaries: 5,
			Seed:         0,
			Workers:      4,
		},
		Artifacts: ArtifactsConfig{Rate: 0.02},
		Output: OutputConfig{
			Dir:          "output",
			CatalogFile:  "star_catalog.csv",
			MapFile:      "star_map.txt",
			ObjectsFile:  "system_objects.csv",
			ArtifactFile: "system_objects_artifacts.csv",
			BundleFile:   "universe.json",
			SummaryFile:  "summary.txt",
		},
		Database: DatabaseConfig{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "universe",
			SSLMode: "disable",
			Path:    "universe.db",
		},
		Server:   ServerConfig{Port: 8080, BaseURL: "http://localhost:8080"},
		Frontend: FrontendConfig{URL: "http://localhost:3000"},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			BurstSize:         20,
		},
		Admin: AdminConfig{TokenTTL: 24 * time.Hour},
		Cache: CacheConfig{TTL: 10 * time.Minute, CleanupInterval: 30 * time.Minute},
		Redis: RedisConfig{Host: "localhost", Port: "6379"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapConfig(fmt.Sprintf("failed to read config file %s", path), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapConfig(fmt.Sprintf("failed to parse config file %s", path), err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Catalog.InputCSV = utils.GetEnv("INPUT_CSV", c.Catalog.InputCSV)
	c.Catalog.RadiusLY = utils.GetEnvFloat("RADIUS_LY", c.Catalog.RadiusLY)
	c.Catalog.MaxStars = utils.GetEnvInt("MAX_STARS", c.Catalog.MaxStars)
	c.Catalog.Scale = utils.GetEnvFloat("GRID_SCALE", c.Catalog.Scale)

	c.Objects.MaxPrimaries = utils.GetEnvInt("MAX_PRIMARIES", c.Objects.MaxPrimaries)
	c.Objects.Seed = utils.GetEnvInt64("GLOBAL_SEED", c.Objects.Seed)
	c.Objects.Workers = utils.GetEnvInt("GENERATOR_WORKERS", c.Objects.Workers)

	c.Artifacts.Rate = utils.GetEnvFloat("ARTIFACT_RATE", c.Artifacts.Rate)

	c.Output.Dir = utils.GetEnv("OUTPUT_DIR", c.Output.Dir)

	c.Database.Driver = utils.GetEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = utils.GetEnv("DB_HOST", c.Database.Host)
	c.Database.Port = utils.GetEnv("DB_PORT", c.Database.Port)
	c.Database.User = utils.GetEnv("DB_USER", c.Database.User)
	c.Database.Password = utils.GetEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = utils.GetEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = utils.GetEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.Path = utils.GetEnv("DB_PATH", c.Database.Path)

	c.Server.Port = utils.GetEnvInt("PORT", c.Server.Port)
	c.Server.BaseURL = utils.GetEnv("BASE_URL", c.Server.BaseURL)
	c.Frontend.URL = utils.GetEnv("FRONTEND_URL", c.Frontend.URL)
	c.Frontend.CORSDebug = utils.GetEnvBool("CORS_DEBUG", c.Frontend.CORSDebug)

	c.RateLimit.Enabled = utils.GetEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RequestsPerSecond = utils.GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.BurstSize = utils.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.BurstSize)
	c.RateLimit.TrustProxy = utils.GetEnvBool("TRUST_PROXY", c.RateLimit.TrustProxy)

	c.Admin.JWTSecret = utils.GetEnv("JWT_SECRET", c.Admin.JWTSecret)
	c.Admin.TokenTTL = utils.GetEnvDuration("ADMIN_TOKEN_TTL", c.Admin.TokenTTL)

	c.Cache.TTL = utils.GetEnvDuration("CACHE_TTL", c.Cache.TTL)

	c.Redis.Enabled = utils.GetEnvBool("REDIS_ENABLED", c.Redis.Enabled)
	c.Redis.URL = utils.GetEnv("REDIS_URL", c.Redis.URL)
	c.Redis.Host = utils.GetEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = utils.GetEnv("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = utils.GetEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = utils.GetEnvInt("REDIS_DB", c.Redis.DB)

	c.Logging.Level = utils.GetEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = utils.GetEnv("LOG_FORMAT", c.Logging.Format)
}

// Validate rejects parameter combinations that would make a run meaningless.
func (c *Config) Validate() error {
	if c.Catalog.Scale <= 0 {
		return errors.Configf("scale must be > 0, got %v", c.Catalog.Scale)
	}
	if c.Catalog.RadiusLY <= 0 {
		return errors.Configf("radius_ly must be > 0, got %v", c.Catalog.RadiusLY)
	}
	if c.Catalog.MaxStars <= 0 {
		return errors.Configf("max_stars must be > 0, got %d", c.Catalog.MaxStars)
	}
	if c.Objects.MaxPrimaries < 0 {
		return errors.Configf("max_primaries must be >= 0, got %d", c.Objects.MaxPrimaries)
	}
	if c.Artifacts.Rate < 0 || c.Artifacts.Rate > 1 {
		return errors.Configf("artifact rate must be between 0.0 and 1.0, got %v", c.Artifacts.Rate)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return errors.Configf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (c *Config) AdminConfigured() bool {
	return len(c.Admin.JWTSecret) >= 32
}
