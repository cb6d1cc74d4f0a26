package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"NewsIngestor/pkg/logger"
)

const (
	configPathEnv     = "NEWSINGESTOR_CONFIG"
	databaseDriverEnv = "DATABASE_DRIVER"
	databaseDSNEnv    = "DATABASE_DSN"
	logLevelEnv       = "LOG_LEVEL"
	logFileEnv        = "LOG_FILE"
	modeEnv           = "NEWSINGESTOR_MODE"
	cacheHookURLEnv   = "CACHE_HOOK_URL"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	HTTP       HTTPConfig       `yaml:"http"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Composer   ComposerConfig   `yaml:"composer"`
	CacheHook  CacheHookConfig  `yaml:"cacheHook"`
	Sources    []SourceConfig   `yaml:"sources"`
}

// DatabaseConfig describes the shared content store.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver            string `yaml:"driver"`
	DSN               string `yaml:"dsn"`
	DefaultAuthorID   int64  `yaml:"defaultAuthorId"`
	DefaultCategoryID int64  `yaml:"defaultCategoryId"`
	MigrateOnStart    bool   `yaml:"migrateOnStart"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// HTTPConfig is shared by the feed reader and the content extractor.
type HTTPConfig struct {
	UserAgent   string        `yaml:"userAgent"`
	FeedTimeout time.Duration `yaml:"feedTimeout"`
	PageTimeout time.Duration `yaml:"pageTimeout"`
}

// PipelineConfig bounds a single run.
type PipelineConfig struct {
	// Mode is "strict", "description" or "synthetic".
	Mode            string        `yaml:"mode"`
	ItemsPerFeed    int           `yaml:"itemsPerFeed"`
	PolitenessDelay time.Duration `yaml:"politenessDelay"`
	SyntheticCount  int           `yaml:"syntheticCount"`
}

// ExtractionConfig tunes the content extractor.
type ExtractionConfig struct {
	Strategies        []string `yaml:"strategies"`
	MinChars          int      `yaml:"minChars"`
	MaxChars          int      `yaml:"maxChars"`
	ParagraphMinChars int      `yaml:"paragraphMinChars"`
	ParagraphLimit    int      `yaml:"paragraphLimit"`
	TitleSuffixes     []string `yaml:"titleSuffixes"`
}

// ComposerConfig carries every static text and catalog used to compose articles.
type ComposerConfig struct {
	// Seed drives template and image selection; zero means time-based.
	Seed                   uint64              `yaml:"seed"`
	TitleTemplates         map[string][]string `yaml:"titleTemplates"`
	FallbackTitleTemplates []string            `yaml:"fallbackTitleTemplates"`
	KeyFactCount           int                 `yaml:"keyFactCount"`
	KeyFactMinChars        int                 `yaml:"keyFactMinChars"`
	BodyTemplatePath       string              `yaml:"bodyTemplatePath"`
	Byline                 string              `yaml:"byline"`
	Images                 ImagesConfig        `yaml:"images"`
	Topics                 []TopicConfig       `yaml:"topics"`
}

// ImagesConfig is the static stock-image lookup table.
type ImagesConfig struct {
	Catalog      map[string][]string  `yaml:"catalog"`
	Descriptions map[string]string    `yaml:"descriptions"`
	Keywords     []KeywordImageConfig `yaml:"keywords"`
}

// KeywordImageConfig overrides the category image when a title mentions a keyword.
type KeywordImageConfig struct {
	Keywords []string `yaml:"keywords"`
	URL      string   `yaml:"url"`
}

// TopicConfig is one static topic for synthetic mode.
type TopicConfig struct {
	Title     string   `yaml:"title"`
	Category  string   `yaml:"category"`
	Excerpt   string   `yaml:"excerpt"`
	KeyPoints []string `yaml:"keyPoints"`
	Analysis  string   `yaml:"analysis"`
	Image     string   `yaml:"image"`
}

// CacheHookConfig describes the front-end refresh endpoint.
type CacheHookConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SourceConfig describes a single feed.
type SourceConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An explicit path wins over the NEWSINGESTOR_CONFIG variable.
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			logger.Bootstrap("config").Printf("cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				logger.Bootstrap("config").Printf("cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.clamp()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDriverEnv); v != "" {
		c.Database.Driver = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(logFileEnv); v != "" {
		c.Logging.File = v
	}

	if v := os.Getenv(modeEnv); v != "" {
		c.Pipeline.Mode = v
	}

	if v := os.Getenv(cacheHookURLEnv); v != "" {
		c.CacheHook.URL = v
	}
}

// clamp replaces nonsensical numeric values with defaults.
func (c *Config) clamp() {
	def := Default()

	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.DefaultAuthorID <= 0 {
		c.Database.DefaultAuthorID = def.Database.DefaultAuthorID
	}
	if c.Database.DefaultCategoryID <= 0 {
		c.Database.DefaultCategoryID = def.Database.DefaultCategoryID
	}
	if c.HTTP.FeedTimeout <= 0 {
		c.HTTP.FeedTimeout = def.HTTP.FeedTimeout
	}
	if c.HTTP.PageTimeout <= 0 {
		c.HTTP.PageTimeout = def.HTTP.PageTimeout
	}
	if c.Pipeline.ItemsPerFeed <= 0 {
		c.Pipeline.ItemsPerFeed = def.Pipeline.ItemsPerFeed
	}
	if c.Pipeline.PolitenessDelay < 0 {
		c.Pipeline.PolitenessDelay = 0
	}
	if c.Pipeline.SyntheticCount <= 0 {
		c.Pipeline.SyntheticCount = def.Pipeline.SyntheticCount
	}
	if c.Extraction.MinChars < 0 {
		c.Extraction.MinChars = def.Extraction.MinChars
	}
	if c.Extraction.MaxChars <= c.Extraction.MinChars {
		c.Extraction.MaxChars = def.Extraction.MaxChars
	}
	if c.Extraction.ParagraphLimit <= 0 {
		c.Extraction.ParagraphLimit = def.Extraction.ParagraphLimit
	}
	if c.Composer.KeyFactCount <= 0 {
		c.Composer.KeyFactCount = def.Composer.KeyFactCount
	}
	if c.Composer.KeyFactMinChars <= 0 {
		c.Composer.KeyFactMinChars = def.Composer.KeyFactMinChars
	}
	if c.CacheHook.Timeout <= 0 {
		c.CacheHook.Timeout = def.CacheHook.Timeout
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Driver != "" {
		base.Database.Driver = override.Database.Driver
	}
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}
	if override.Database.DefaultAuthorID != 0 {
		base.Database.DefaultAuthorID = override.Database.DefaultAuthorID
	}
	if override.Database.DefaultCategoryID != 0 {
		base.Database.DefaultCategoryID = override.Database.DefaultCategoryID
	}
	if override.Database.MigrateOnStart {
		base.Database.MigrateOnStart = true
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}

	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}
	if override.HTTP.FeedTimeout != 0 {
		base.HTTP.FeedTimeout = override.HTTP.FeedTimeout
	}
	if override.HTTP.PageTimeout != 0 {
		base.HTTP.PageTimeout = override.HTTP.PageTimeout
	}

	if override.Pipeline.Mode != "" {
		base.Pipeline.Mode = override.Pipeline.Mode
	}
	if override.Pipeline.ItemsPerFeed != 0 {
		base.Pipeline.ItemsPerFeed = override.Pipeline.ItemsPerFeed
	}
	if override.Pipeline.PolitenessDelay != 0 {
		base.Pipeline.PolitenessDelay = override.Pipeline.PolitenessDelay
	}
	if override.Pipeline.SyntheticCount != 0 {
		base.Pipeline.SyntheticCount = override.Pipeline.SyntheticCount
	}

	if len(override.Extraction.Strategies) > 0 {
		base.Extraction.Strategies = override.Extraction.Strategies
	}
	if override.Extraction.MinChars != 0 {
		base.Extraction.MinChars = override.Extraction.MinChars
	}
	if override.Extraction.MaxChars != 0 {
		base.Extraction.MaxChars = override.Extraction.MaxChars
	}
	if override.Extraction.ParagraphMinChars != 0 {
		base.Extraction.ParagraphMinChars = override.Extraction.ParagraphMinChars
	}
	if override.Extraction.ParagraphLimit != 0 {
		base.Extraction.ParagraphLimit = override.Extraction.ParagraphLimit
	}
	if len(override.Extraction.TitleSuffixes) > 0 {
		base.Extraction.TitleSuffixes = override.Extraction.TitleSuffixes
	}

	if override.Composer.Seed != 0 {
		base.Composer.Seed = override.Composer.Seed
	}
	if len(override.Composer.TitleTemplates) > 0 {
		base.Composer.TitleTemplates = override.Composer.TitleTemplates
	}
	if len(override.Composer.FallbackTitleTemplates) > 0 {
		base.Composer.FallbackTitleTemplates = override.Composer.FallbackTitleTemplates
	}
	if override.Composer.KeyFactCount != 0 {
		base.Composer.KeyFactCount = override.Composer.KeyFactCount
	}
	if override.Composer.KeyFactMinChars != 0 {
		base.Composer.KeyFactMinChars = override.Composer.KeyFactMinChars
	}
	if override.Composer.BodyTemplatePath != "" {
		base.Composer.BodyTemplatePath = override.Composer.BodyTemplatePath
	}
	if override.Composer.Byline != "" {
		base.Composer.Byline = override.Composer.Byline
	}
	if len(override.Composer.Images.Catalog) > 0 {
		base.Composer.Images.Catalog = override.Composer.Images.Catalog
	}
	if len(override.Composer.Images.Descriptions) > 0 {
		base.Composer.Images.Descriptions = override.Composer.Images.Descriptions
	}
	if len(override.Composer.Images.Keywords) > 0 {
		base.Composer.Images.Keywords = override.Composer.Images.Keywords
	}
	if len(override.Composer.Topics) > 0 {
		base.Composer.Topics = override.Composer.Topics
	}

	if override.CacheHook.URL != "" {
		base.CacheHook.URL = override.CacheHook.URL
	}
	if override.CacheHook.Timeout != 0 {
		base.CacheHook.Timeout = override.CacheHook.Timeout
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}
