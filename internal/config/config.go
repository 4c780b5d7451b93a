package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohmanhakim/justext/internal/classifier"
	"github.com/rohmanhakim/justext/internal/decoder"
	"github.com/rohmanhakim/justext/internal/output"
	"github.com/rohmanhakim/justext/internal/stoplist"
	"github.com/rohmanhakim/justext/pkg/hashutil"
	"github.com/rohmanhakim/justext/pkg/retry"
	"github.com/rohmanhakim/justext/pkg/timeutil"
)

type Config struct {
	//===============
	// Language
	//===============
	// Bundled language name, path to a word-per-line file, or "None"
	stoplist string

	//===============
	// Classification
	//===============
	// Paragraphs shorter than this are "short"
	lengthLow int
	// Paragraphs longer than this may be "good"
	lengthHigh int
	// Minimum stop-word density for "neargood"
	stopwordsLow float64
	// Minimum stop-word density for "good"
	stopwordsHigh float64
	// Paragraphs with a higher share of link characters are "bad"
	maxLinkDensity float64
	// How many characters a short heading may be away from good text
	maxHeadingDistance int
	// Disable heading detection
	noHeadings bool
	// Extra element names removed before classification, e.g. "nav"
	killTags []string

	//===============
	// Decoding
	//===============
	// Forced input encoding; empty means detect
	encoding string
	// Encoding used when detection finds nothing
	defaultEncoding string
	// What to do with undecodable bytes
	encErrors decoder.ErrorPolicy

	//===============
	// Output
	//===============
	format output.Format
	// Single-document destination; empty means stdout
	outputFile string
	// Batch destination directory
	outputDir string
	// Algorithm hashing batch sources into filenames
	hashAlgo hashutil.HashAlgo

	//===============
	// Fetch / politeness
	//===============
	// Maximum number of documents processed concurrently in batch mode
	concurrency int
	// Minimum waiting time between two requests to the same host
	baseDelay time.Duration
	// Randomized variation added on top of delays
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64
	// maximum attempt during retry
	maxAttempt int
	// initial delay for backoff
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration
	// Maximum time of a single fetch request
	timeout time.Duration
	// User agent sent with every request
	userAgent string
}

// WithDefault creates a new Config with the given stoplist selector and
// default values for all other fields.
func WithDefault(stoplistSelector string) *Config {
	params := classifier.DefaultParams()
	defaultConfig := Config{
		stoplist:               stoplistSelector,
		lengthLow:              params.LengthLow,
		lengthHigh:             params.LengthHigh,
		stopwordsLow:           params.StopwordsLow,
		stopwordsHigh:          params.StopwordsHigh,
		maxLinkDensity:         params.MaxLinkDensity,
		maxHeadingDistance:     params.MaxHeadingDistance,
		noHeadings:             params.NoHeadings,
		killTags:               []string{},
		encoding:               "",
		defaultEncoding:        decoder.DefaultEncoding,
		encErrors:              decoder.PolicyStrict,
		format:                 output.FormatDefault,
		outputFile:             "",
		outputDir:              "output",
		hashAlgo:               hashutil.HashAlgoSHA256,
		concurrency:            4,
		baseDelay:              time.Second,
		jitter:                 200 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		maxAttempt:             3,
		backoffInitialDuration: 500 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     10 * time.Second,
		timeout:                30 * time.Second,
		userAgent:              "justext/1.0",
	}
	return &defaultConfig
}

func (c *Config) WithStoplist(selector string) *Config {
	c.stoplist = selector
	return c
}

func (c *Config) WithLengthLow(n int) *Config {
	c.lengthLow = n
	return c
}

func (c *Config) WithLengthHigh(n int) *Config {
	c.lengthHigh = n
	return c
}

func (c *Config) WithStopwordsLow(density float64) *Config {
	c.stopwordsLow = density
	return c
}

func (c *Config) WithStopwordsHigh(density float64) *Config {
	c.stopwordsHigh = density
	return c
}

func (c *Config) WithMaxLinkDensity(density float64) *Config {
	c.maxLinkDensity = density
	return c
}

func (c *Config) WithMaxHeadingDistance(distance int) *Config {
	c.maxHeadingDistance = distance
	return c
}

func (c *Config) WithNoHeadings(noHeadings bool) *Config {
	c.noHeadings = noHeadings
	return c
}

func (c *Config) WithKillTags(tags []string) *Config {
	c.killTags = tags
	return c
}

func (c *Config) WithEncoding(encoding string) *Config {
	c.encoding = encoding
	return c
}

func (c *Config) WithDefaultEncoding(encoding string) *Config {
	c.defaultEncoding = encoding
	return c
}

func (c *Config) WithEncErrors(policy decoder.ErrorPolicy) *Config {
	c.encErrors = policy
	return c
}

func (c *Config) WithFormat(format output.Format) *Config {
	c.format = format
	return c
}

func (c *Config) WithOutputFile(path string) *Config {
	c.outputFile = path
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithConcurrency(concurrency int) *Config {
	c.concurrency = concurrency
	return c
}

func (c *Config) WithBaseDelay(delay time.Duration) *Config {
	c.baseDelay = delay
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

// Build validates the configuration. Every error wraps ErrInvalidConfig.
func (c *Config) Build() (Config, error) {
	if strings.TrimSpace(c.stoplist) == "" {
		return Config{}, fmt.Errorf("%w: stoplist cannot be empty", ErrInvalidConfig)
	}
	if err := c.ClassifierParams().Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if _, err := output.ParseFormat(string(c.format)); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if _, err := decoder.ParseErrorPolicy(string(c.encErrors)); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if c.encoding != "" {
		if _, _, ok := decoder.LookupEncoding(c.encoding); !ok {
			return Config{}, fmt.Errorf("%w: unknown encoding %q", ErrInvalidConfig, c.encoding)
		}
	}
	if _, _, ok := decoder.LookupEncoding(c.defaultEncoding); !ok {
		return Config{}, fmt.Errorf("%w: unknown default encoding %q", ErrInvalidConfig, c.defaultEncoding)
	}
	if _, err := hashutil.ParseHashAlgo(string(c.hashAlgo)); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	if c.concurrency < 1 {
		return Config{}, fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	}
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1", ErrInvalidConfig)
	}

	tags := make([]string, 0, len(c.killTags))
	for _, tag := range c.killTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	c.killTags = tags

	return *c, nil
}

func (c Config) Stoplist() string {
	return c.stoplist
}

// LanguageIndependent reports whether the stoplist selector is "None".
func (c Config) LanguageIndependent() bool {
	return stoplist.IsNone(c.stoplist)
}

// ClassifierParams gathers the thresholds. Language-independent mode zeroes
// both stop-word densities.
func (c Config) ClassifierParams() classifier.Params {
	params := classifier.Params{
		LengthLow:          c.lengthLow,
		LengthHigh:         c.lengthHigh,
		StopwordsLow:       c.stopwordsLow,
		StopwordsHigh:      c.stopwordsHigh,
		MaxLinkDensity:     c.maxLinkDensity,
		MaxHeadingDistance: c.maxHeadingDistance,
		NoHeadings:         c.noHeadings,
	}
	if c.LanguageIndependent() {
		return params.LanguageIndependent()
	}
	return params
}

func (c Config) KillTags() []string {
	tags := make([]string, len(c.killTags))
	copy(tags, c.killTags)
	return tags
}

// DecodeParam builds decoder input for a document served with contentType.
func (c Config) DecodeParam(contentType string) decoder.DecodeParam {
	return decoder.NewDecodeParam(c.encoding, c.defaultEncoding, contentType, c.encErrors)
}

func (c Config) RetryParam() retry.RetryParam {
	return retry.NewRetryParam(
		c.jitter,
		c.randomSeed,
		c.maxAttempt,
		c.BackoffParam(),
	)
}

func (c Config) BackoffParam() timeutil.BackoffParam {
	return timeutil.NewBackoffParam(
		c.backoffInitialDuration,
		c.backoffMultiplier,
		c.backoffMaxDuration,
	)
}

func (c Config) Encoding() string {
	return c.encoding
}

func (c Config) DefaultEncoding() string {
	return c.defaultEncoding
}

func (c Config) EncErrors() decoder.ErrorPolicy {
	return c.encErrors
}

func (c Config) Format() output.Format {
	return c.format
}

func (c Config) OutputFile() string {
	return c.outputFile
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) Concurrency() int {
	return c.concurrency
}

func (c Config) BaseDelay() time.Duration {
	return c.baseDelay
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}
