package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/relicdev/relic/schema"
)

// Default values for configuration.
const (
	DefaultBranch       = "main"
	DefaultCloneTimeout = 10 * time.Minute
	DefaultReportLimit  = 10
	DefaultHistoryLimit = 50
	DefaultHandleLimit  = 256
	DefaultPrecision    = 2
)

// DefaultWorkers is the default number of concurrent workers for the
// per-file analysis pass.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for the service.
// This struct remains the "final, validated" config.
type Config struct {
	RepoURL  string // Remote repository URL; empty when analyzing a local path
	RepoPath string // Local working copy path; set skips acquisition
	Branch   string

	TempRoot     string // Root directory for transient working copies
	CloneTimeout time.Duration
	Workers      int
	ReportLimit  int // Top-N cap of the churn report
	HandleLimit  int // Handle table size before oldest-eviction

	Options schema.AnalysisOptions
	Tuning  schema.Tuning

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	NarratorModel  string // OpenAI model for the narrator; empty disables it
	NarratorAPIKey string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct before validation.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag
	RepoArg string

	Branch         string `mapstructure:"branch"`
	TempRoot       string `mapstructure:"temp-root"`
	CloneTimeout   string `mapstructure:"clone-timeout"`
	CloneDepth     int    `mapstructure:"clone-depth"`
	Workers        int    `mapstructure:"workers"`
	Limit          int    `mapstructure:"limit"`
	MaxCommits     int    `mapstructure:"max-commits"`
	Narrate        bool   `mapstructure:"narrate"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	NarratorModel  string `mapstructure:"narrator-model"`
}

// Validate converts the raw input into a final Config, applying defaults and
// rejecting inconsistent values.
func (in *ConfigRawInput) Validate() (*Config, error) {
	cfg := &Config{
		Branch:      in.Branch,
		TempRoot:    in.TempRoot,
		Workers:     in.Workers,
		ReportLimit: in.Limit,
		HandleLimit: DefaultHandleLimit,
		Options:     schema.DefaultAnalysisOptions(),
		Tuning:      schema.DefaultTuning(),
		OutputFile:  in.OutputFile,
		Precision:   in.Precision,
		Width:       in.Width,
	}

	if in.RepoArg != "" {
		if LooksLikeURL(in.RepoArg) {
			cfg.RepoURL = NormalizeRepoURL(in.RepoArg)
		} else {
			abs, err := filepath.Abs(in.RepoArg)
			if err != nil {
				return nil, fmt.Errorf("invalid repository path %q: %w", in.RepoArg, err)
			}
			cfg.RepoPath = abs
		}
	}

	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.TempRoot == "" {
		cfg.TempRoot = filepath.Join(os.TempDir(), "relic-repos")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.ReportLimit <= 0 {
		cfg.ReportLimit = DefaultReportLimit
	}
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}

	cfg.CloneTimeout = DefaultCloneTimeout
	if in.CloneTimeout != "" {
		d, err := time.ParseDuration(in.CloneTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid clone-timeout %q: %w", in.CloneTimeout, err)
		}
		cfg.CloneTimeout = d
	}

	if in.CloneDepth > 0 {
		cfg.Tuning.CloneDepth = in.CloneDepth
	}
	if in.MaxCommits > 0 {
		cfg.Options.MaxCommits = in.MaxCommits
		cfg.Tuning.MaxCommits = in.MaxCommits
	}
	cfg.Options.Narrate = in.Narrate

	cfg.Output = schema.TextOut
	if in.Output != "" {
		switch mode := schema.OutputMode(in.Output); mode {
		case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
			cfg.Output = mode
		default:
			return nil, fmt.Errorf("invalid output mode %q: must be text, csv, json or parquet", in.Output)
		}
	}

	cfg.UseColors = true
	if in.Color != "" {
		useColors, err := ParseBoolString(in.Color)
		if err != nil {
			return nil, err
		}
		cfg.UseColors = useColors
	}

	cfg.CacheBackend = schema.MemoryBackend
	if in.CacheBackend != "" {
		switch backend := schema.DatabaseBackend(in.CacheBackend); backend {
		case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.MemoryBackend, schema.NoneBackend:
			cfg.CacheBackend = backend
		default:
			return nil, fmt.Errorf("invalid cache backend %q: must be sqlite, mysql, postgresql, memory or none", in.CacheBackend)
		}
	}
	cfg.CacheDBConnect = in.CacheDBConnect

	cfg.NarratorModel = in.NarratorModel
	cfg.NarratorAPIKey = os.Getenv("RELIC_OPENAI_API_KEY")

	return cfg, nil
}

// CloneWithRepo returns a copy of the config pointed at a different
// repository target. Used by boundary handlers that accept per-request
// repository arguments.
func (c *Config) CloneWithRepo(url, path, branch string) *Config {
	clone := *c
	clone.RepoURL = url
	clone.RepoPath = path
	if branch != "" {
		clone.Branch = branch
	}
	return &clone
}

// GetCacheDBFilePath returns the default SQLite DB file path for the result
// cache.
func GetCacheDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".relic_cache.db"
	}
	return filepath.Join(home, ".relic_cache.db")
}
