package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rohmanhakim/justext/internal/build"
	"github.com/rohmanhakim/justext/internal/classifier"
	"github.com/rohmanhakim/justext/internal/config"
	"github.com/rohmanhakim/justext/internal/decoder"
	"github.com/rohmanhakim/justext/internal/fetcher"
	"github.com/rohmanhakim/justext/internal/metadata"
	"github.com/rohmanhakim/justext/internal/output"
	"github.com/rohmanhakim/justext/internal/pipeline"
	"github.com/rohmanhakim/justext/internal/storage"
	"github.com/rohmanhakim/justext/internal/stoplist"
	"github.com/rohmanhakim/justext/pkg/fileutil"
	"github.com/rohmanhakim/justext/pkg/hashutil"
	"github.com/rohmanhakim/justext/pkg/limiter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile            string
	stoplistSelector   string
	inputURL           string
	outputFile         string
	format             string
	encoding           string
	defaultEncoding    string
	encErrors          string
	lengthLow          int
	lengthHigh         int
	stopwordsLow       float64
	stopwordsHigh      float64
	maxLinkDensity     float64
	maxHeadingDistance int
	noHeadings         bool
	killTags           []string
	verbose            bool

	outputDir   string
	concurrency int
	hashAlgo    string

	userAgent  string
	timeout    time.Duration
	baseDelay  time.Duration
	jitter     time.Duration
	randomSeed int64
	maxAttempt int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "justext [FILE|-]",
	Short: "Remove boilerplate from HTML pages.",
	Long: `justext splits an HTML page into paragraphs and keeps the ones that read
like full sentences: long enough, rich in stop-words and not dominated by links.
Navigation, headers, footers, link lists and copyright lines are dropped.

The input is a file, standard input ("-" or no argument) or a URL given with --url.
Use "justext stoplists" to list the bundled languages, or pass --stoplist None
for language-independent mode.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		source, err := resolveSingleSource(args)
		if err != nil {
			return err
		}
		recorder := metadata.NewRecorder(newLogger(cmd.ErrOrStderr()))
		return runSingle(cmd.Context(), cfg, recorder, source, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch INPUT...",
	Short: "Process many files or URLs into an output directory.",
	Long: `batch processes every input concurrently and writes one output file per input
into --output-dir. Files are named after a hash of the canonical source, so
re-running a batch overwrites the same files.

A failing input does not stop the others; the command exits non-zero once all
inputs have been attempted.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		recorder := metadata.NewRecorder(newLogger(cmd.ErrOrStderr()))
		return runBatch(cmd.Context(), cfg, recorder, args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var stoplistsCmd = &cobra.Command{
	Use:   "stoplists",
	Short: "List the bundled stop-word languages.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range stoplist.Available() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// RootCommand exposes the command tree, mainly for tests.
func RootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	params := classifier.DefaultParams()

	rootCmd.Version = build.FullVersion()
	rootCmd.SetVersionTemplate(build.Banner("justext") + "\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/justext.yaml)")
	rootCmd.PersistentFlags().StringVarP(&stoplistSelector, "stoplist", "s", "", "bundled language, path to a word list, or None")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", string(output.FormatDefault), "output format: default, boilerplate, detailed, krdwrd, markdown or json")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "", "force the input encoding instead of detecting it")
	rootCmd.PersistentFlags().StringVar(&defaultEncoding, "default-encoding", decoder.DefaultEncoding, "encoding used when detection finds nothing")
	rootCmd.PersistentFlags().StringVar(&encErrors, "enc-errors", string(decoder.PolicyStrict), "undecodable bytes: strict, ignore or replace")
	rootCmd.PersistentFlags().IntVar(&lengthLow, "length-low", params.LengthLow, "paragraphs shorter than this are short")
	rootCmd.PersistentFlags().IntVar(&lengthHigh, "length-high", params.LengthHigh, "paragraphs longer than this may be good")
	rootCmd.PersistentFlags().Float64Var(&stopwordsLow, "stopwords-low", params.StopwordsLow, "minimum stop-word density of neargood paragraphs")
	rootCmd.PersistentFlags().Float64Var(&stopwordsHigh, "stopwords-high", params.StopwordsHigh, "minimum stop-word density of good paragraphs")
	rootCmd.PersistentFlags().Float64Var(&maxLinkDensity, "max-link-density", params.MaxLinkDensity, "paragraphs with a higher link density are bad")
	rootCmd.PersistentFlags().IntVar(&maxHeadingDistance, "max-heading-distance", params.MaxHeadingDistance, "characters a short heading may be away from good text")
	rootCmd.PersistentFlags().BoolVar(&noHeadings, "no-headings", false, "do not treat headings specially")
	rootCmd.PersistentFlags().StringArrayVar(&killTags, "kill-tag", []string{}, "extra element removed before classification (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug events to stderr")

	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&baseDelay, "base-delay", 0, "base delay between HTTP requests to the same host")
	rootCmd.PersistentFlags().DurationVar(&jitter, "jitter", 0, "random jitter added to base delay")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for random number generation (0 for current time)")
	rootCmd.PersistentFlags().IntVar(&maxAttempt, "max-attempt", 0, "maximum fetch attempts per URL")

	rootCmd.Flags().StringVar(&inputURL, "url", "", "fetch the input page from this http(s) URL")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the result to this file instead of stdout")

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory receiving one file per input (default \"output\")")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of inputs processed at once (default 4)")
	batchCmd.Flags().StringVar(&hashAlgo, "hash-algo", "", "hash used to name output files: sha256 or blake3")

	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(stoplistsCmd)
}

// InitConfig reads in config file and flags, exiting on error.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and flags, returning any errors.
// This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	if stoplistSelector == "" {
		return config.Config{}, fmt.Errorf("%w: --stoplist is required (see \"justext stoplists\")", config.ErrInvalidConfig)
	}

	parsedFormat, err := output.ParseFormat(format)
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
	}
	policy, err := decoder.ParseErrorPolicy(encErrors)
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
	}

	// Thresholds always come from flags; their defaults are the classifier defaults.
	configBuilder := config.WithDefault(stoplistSelector).
		WithLengthLow(lengthLow).
		WithLengthHigh(lengthHigh).
		WithStopwordsLow(stopwordsLow).
		WithStopwordsHigh(stopwordsHigh).
		WithMaxLinkDensity(maxLinkDensity).
		WithMaxHeadingDistance(maxHeadingDistance).
		WithNoHeadings(noHeadings).
		WithKillTags(killTags).
		WithFormat(parsedFormat).
		WithEncErrors(policy)

	if encoding != "" {
		configBuilder = configBuilder.WithEncoding(encoding)
	}

	if defaultEncoding != "" {
		configBuilder = configBuilder.WithDefaultEncoding(defaultEncoding)
	}

	if outputFile != "" {
		configBuilder = configBuilder.WithOutputFile(outputFile)
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if concurrency > 0 {
		configBuilder = configBuilder.WithConcurrency(concurrency)
	}

	if hashAlgo != "" {
		algo, err := hashutil.ParseHashAlgo(hashAlgo)
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
		}
		configBuilder = configBuilder.WithHashAlgo(algo)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if baseDelay > 0 {
		configBuilder = configBuilder.WithBaseDelay(baseDelay)
	}

	if jitter > 0 {
		configBuilder = configBuilder.WithJitter(jitter)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	if maxAttempt > 0 {
		configBuilder = configBuilder.WithMaxAttempt(maxAttempt)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func resolveSingleSource(args []string) (pipeline.Source, error) {
	if inputURL != "" {
		if len(args) > 0 {
			return pipeline.Source{}, fmt.Errorf("%w: give either FILE or --url, not both", config.ErrInvalidConfig)
		}
		source := pipeline.ParseSource(inputURL)
		if source.Kind() != pipeline.SourceURL {
			return pipeline.Source{}, fmt.Errorf("%w: --url must be an absolute http(s) URL", config.ErrInvalidConfig)
		}
		return source, nil
	}
	if len(args) == 0 {
		return pipeline.ParseSource(fileutil.StdinPath), nil
	}
	return pipeline.ParseSource(args[0]), nil
}

func runSingle(
	ctx context.Context,
	cfg config.Config,
	recorder metadata.MetadataSink,
	source pipeline.Source,
	stdin io.Reader,
	stdout io.Writer,
) error {
	p, err := pipeline.NewFromConfig(cfg, recorder)
	if err != nil {
		return err
	}

	input, err := newLoader(cfg, recorder, stdin).Load(ctx, source)
	if err != nil {
		return err
	}

	result, err := p.Process(input)
	if err != nil {
		return err
	}

	renderer := output.NewRenderer(recorder)
	if cfg.OutputFile() == "" {
		if err := renderer.Render(stdout, cfg.Format(), result.Paragraphs); err != nil {
			return err
		}
		return nil
	}

	content, err := renderer.Bytes(cfg.Format(), result.Paragraphs)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(cfg.OutputFile(), content); err != nil {
		return err
	}
	recorder.RecordArtifact(
		artifactKind(cfg.Format()),
		cfg.OutputFile(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrSource, source.Name()),
		},
	)
	return nil
}

func runBatch(
	ctx context.Context,
	cfg config.Config,
	recorder metadata.MetadataSink,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
) error {
	p, err := pipeline.NewFromConfig(cfg, recorder)
	if err != nil {
		return err
	}

	sources := make([]pipeline.Source, len(args))
	for i, arg := range args {
		sources[i] = pipeline.ParseSource(arg)
	}

	localSink := storage.NewLocalSink(recorder)
	runner := pipeline.NewBatchRunner(
		p,
		newLoader(cfg, recorder, stdin),
		output.NewRenderer(recorder),
		&localSink,
		cfg.Format(),
		cfg.OutputDir(),
		cfg.HashAlgo(),
		cfg.Concurrency(),
	)

	report := runner.Run(ctx, sources)
	for _, item := range report.Items {
		if item.Err != nil {
			fmt.Fprintf(stdout, "%s\tFAILED\t%s\n", item.Source, item.Err)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\n", item.Source, item.Write.Path())
	}
	if err := report.Err(); err != nil {
		return err
	}
	return nil
}

func newLoader(cfg config.Config, recorder metadata.MetadataSink, stdin io.Reader) *pipeline.Loader {
	httpClient := &http.Client{Timeout: cfg.Timeout()}
	return pipeline.NewLoader(
		fetcher.NewHtmlFetcher(recorder, httpClient),
		limiter.NewConcurrentRateLimiter(cfg.BaseDelay(), cfg.Jitter(), cfg.RandomSeed(), cfg.BackoffParam()),
		cfg.RetryParam(),
		cfg.UserAgent(),
		stdin,
	)
}

func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func artifactKind(f output.Format) metadata.ArtifactKind {
	switch f {
	case output.FormatMarkdown:
		return metadata.ArtifactMarkdown
	case output.FormatJSON:
		return metadata.ArtifactJSON
	default:
		return metadata.ArtifactText
	}
}

func ResetFlags() {
	params := classifier.DefaultParams()
	cfgFile = ""
	stoplistSelector = ""
	inputURL = ""
	outputFile = ""
	format = string(output.FormatDefault)
	encoding = ""
	defaultEncoding = decoder.DefaultEncoding
	encErrors = string(decoder.PolicyStrict)
	lengthLow = params.LengthLow
	lengthHigh = params.LengthHigh
	stopwordsLow = params.StopwordsLow
	stopwordsHigh = params.StopwordsHigh
	maxLinkDensity = params.MaxLinkDensity
	maxHeadingDistance = params.MaxHeadingDistance
	noHeadings = false
	killTags = []string{}
	verbose = false
	outputDir = ""
	concurrency = 0
	hashAlgo = ""
	userAgent = ""
	timeout = 0
	baseDelay = 0
	jitter = 0
	randomSeed = 0
	maxAttempt = 0
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetStoplistForTest(selector string) {
	stoplistSelector = selector
}

func SetURLForTest(rawURL string) {
	inputURL = rawURL
}

func SetOutputFileForTest(path string) {
	outputFile = path
}

func SetFormatForTest(f string) {
	format = f
}

func SetEncodingForTest(e string) {
	encoding = e
}

func SetEncErrorsForTest(policy string) {
	encErrors = policy
}

func SetLengthLowForTest(n int) {
	lengthLow = n
}

func SetStopwordsLowForTest(density float64) {
	stopwordsLow = density
}

func SetStopwordsHighForTest(density float64) {
	stopwordsHigh = density
}

func SetNoHeadingsForTest(disabled bool) {
	noHeadings = disabled
}

func SetKillTagsForTest(tags []string) {
	killTags = tags
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetConcurrencyForTest(conc int) {
	concurrency = conc
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetBaseDelayForTest(delay time.Duration) {
	baseDelay = delay
}

func SetMaxAttemptForTest(attempts int) {
	maxAttempt = attempts
}
