package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/justext/internal/decoder"
	"github.com/rohmanhakim/justext/internal/output"
	"github.com/rohmanhakim/justext/pkg/fileutil"
	"github.com/rohmanhakim/justext/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

// configDTO mirrors the config file. Pointer fields distinguish "absent"
// from an explicit zero.
type configDTO struct {
	Stoplist           string   `json:"stoplist" yaml:"stoplist"`
	LengthLow          *int     `json:"lengthLow,omitempty" yaml:"lengthLow,omitempty"`
	LengthHigh         *int     `json:"lengthHigh,omitempty" yaml:"lengthHigh,omitempty"`
	StopwordsLow       *float64 `json:"stopwordsLow,omitempty" yaml:"stopwordsLow,omitempty"`
	StopwordsHigh      *float64 `json:"stopwordsHigh,omitempty" yaml:"stopwordsHigh,omitempty"`
	MaxLinkDensity     *float64 `json:"maxLinkDensity,omitempty" yaml:"maxLinkDensity,omitempty"`
	MaxHeadingDistance *int     `json:"maxHeadingDistance,omitempty" yaml:"maxHeadingDistance,omitempty"`
	NoHeadings         bool     `json:"noHeadings,omitempty" yaml:"noHeadings,omitempty"`
	KillTags           []string `json:"killTags,omitempty" yaml:"killTags,omitempty"`

	Encoding        string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	DefaultEncoding string `json:"defaultEncoding,omitempty" yaml:"defaultEncoding,omitempty"`
	EncErrors       string `json:"encErrors,omitempty" yaml:"encErrors,omitempty"`

	Format     string `json:"format,omitempty" yaml:"format,omitempty"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
	OutputDir  string `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	HashAlgo   string `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`

	Concurrency            int           `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	BaseDelay              time.Duration `json:"baseDelay,omitempty" yaml:"baseDelay,omitempty"`
	Jitter                 time.Duration `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	RandomSeed             int64         `json:"randomSeed,omitempty" yaml:"randomSeed,omitempty"`
	MaxAttempt             int           `json:"maxAttempt,omitempty" yaml:"maxAttempt,omitempty"`
	BackoffInitialDuration time.Duration `json:"backoffInitialDuration,omitempty" yaml:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64       `json:"backoffMultiplier,omitempty" yaml:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     time.Duration `json:"backoffMaxDuration,omitempty" yaml:"backoffMaxDuration,omitempty"`
	Timeout                time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent              string        `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault(dto.Stoplist)

	if dto.LengthLow != nil {
		cfg.lengthLow = *dto.LengthLow
	}
	if dto.LengthHigh != nil {
		cfg.lengthHigh = *dto.LengthHigh
	}
	if dto.StopwordsLow != nil {
		cfg.stopwordsLow = *dto.StopwordsLow
	}
	if dto.StopwordsHigh != nil {
		cfg.stopwordsHigh = *dto.StopwordsHigh
	}
	if dto.MaxLinkDensity != nil {
		cfg.maxLinkDensity = *dto.MaxLinkDensity
	}
	if dto.MaxHeadingDistance != nil {
		cfg.maxHeadingDistance = *dto.MaxHeadingDistance
	}
	cfg.noHeadings = dto.NoHeadings
	if len(dto.KillTags) > 0 {
		cfg.killTags = dto.KillTags
	}

	cfg.encoding = dto.Encoding
	if dto.DefaultEncoding != "" {
		cfg.defaultEncoding = dto.DefaultEncoding
	}
	if dto.EncErrors != "" {
		policy, err := decoder.ParseErrorPolicy(dto.EncErrors)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
		}
		cfg.encErrors = policy
	}

	if dto.Format != "" {
		format, err := output.ParseFormat(dto.Format)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
		}
		cfg.format = format
	}
	if dto.OutputFile != "" {
		cfg.outputFile = dto.OutputFile
	}
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	if dto.HashAlgo != "" {
		cfg.hashAlgo = hashutil.HashAlgo(dto.HashAlgo)
	}

	// For the remaining fields, only override if a non-zero value is provided
	if dto.Concurrency != 0 {
		cfg.concurrency = dto.Concurrency
	}
	if dto.BaseDelay != 0 {
		cfg.baseDelay = dto.BaseDelay
	}
	if dto.Jitter != 0 {
		cfg.jitter = dto.Jitter
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.BackoffInitialDuration != 0 {
		cfg.backoffInitialDuration = dto.BackoffInitialDuration
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.BackoffMaxDuration != 0 {
		cfg.backoffMaxDuration = dto.BackoffMaxDuration
	}
	if dto.Timeout != 0 {
		cfg.timeout = dto.Timeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}

	return cfg.Build()
}

// WithConfigFile loads a config from a .json, .yaml or .yml file.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch fileutil.GetFileExtension(path) {
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	case "json":
		err = json.Unmarshal(configContent, &cfgDTO)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}
