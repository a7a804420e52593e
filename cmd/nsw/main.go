// Command nsw normalizes text into speakable words and maps them to pronunciations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/book-expert/logger"
	"github.com/book-expert/nsw-normalizer/internal/config"
	"github.com/book-expert/nsw-normalizer/internal/fsutil"
	"github.com/book-expert/nsw-normalizer/internal/lexicon"
	"github.com/book-expert/nsw-normalizer/internal/nsw"
	"github.com/book-expert/nsw-normalizer/internal/pipeline"
	"github.com/book-expert/nsw-normalizer/internal/pronounce"
	"github.com/book-expert/nsw-normalizer/internal/segment"
	"golang.org/x/sync/errgroup"
)

// Flag descriptions.
const (
	flagTextDesc    = "Text to normalize"
	flagOutputDesc  = "Output directory for file results"
	flagDictDesc    = "CMU-format pronunciation dictionary (.dict or .dict.zst)"
	flagConfigDesc  = "Path to a TOML configuration file"
	flagVerboseDesc = "Enable verbose logging"
	flagJobsDesc    = "Number of files processed at once"
)

// Flag names.
const (
	flagText    = "text"
	flagOutput  = "output"
	flagDict    = "dict"
	flagConfig  = "config"
	flagVerbose = "verbose"
	flagJobs    = "jobs"
)

// Error messages.
const (
	errEitherTextOrFiles  = "either --text or at least one input file must be provided"
	errCannotSpecifyBoth  = "cannot specify both --text and input files"
	errInvalidJobs        = "--jobs must be positive"
	errNotTextFile        = "not a text file"
	errFailedToLoadConfig = "failed to load configuration: %w"
	errFailedToInitLogger = "failed to initialize logger: %w"
	errFailedToLoadDict   = "failed to load dictionary: %w"
	errFailedToProcess    = "failed to process %s: %w"
)

// Log and output messages.
const (
	logClientInitialized = "NSW client initialized (%d dictionary entries)"
	logProcessingFile    = "Processing %s"
	outNormalized        = "Normalized:\n%s\n\n"
	outMatched           = "Matched to pronunciation:\n%s\n\n"
	outPairsHeader       = "Word pairs:\n"
)

// File names and suffixes.
const (
	logFileNameDefault = "nsw-client.log"
	logFileNameVerbose = "nsw-client-verbose.log"
	suffixNormalized   = "_norm"
	suffixPronounced   = "_pron"
	suffixPairs        = "_norm_pron"
	outputPermissions  = 0o600
	defaultJobs        = 4
)

var (
	errNoInput       = errors.New(errEitherTextOrFiles)
	errBothInputs    = errors.New(errCannotSpecifyBoth)
	errJobs          = errors.New(errInvalidJobs)
	errNotATextInput = errors.New(errNotTextFile)
)

// appFlags holds the parsed command-line flag values.
type appFlags struct {
	text    string
	output  string
	dict    string
	config  string
	verbose bool
	jobs    int
	files   []string
}

func main() {
	err := run()
	if err != nil {
		// A logger might not be initialized yet, so use the standard log package.
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	flags, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	err = validateFlags(flags)
	if err != nil {
		flag.Usage()

		return err
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	appLog, err := setupLogger(cfg.Paths.BaseLogsDir, flags.verbose)
	if err != nil {
		return err
	}

	defer func() { _ = appLog.Close() }()

	textPipeline, entries, err := buildPipeline(flags.dict, cfg)
	if err != nil {
		appLog.Error("%v", err)

		return err
	}

	appLog.Info(logClientInitialized, entries)

	if flags.text != "" {
		return processText(textPipeline, flags.text, os.Stdout)
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	return processFiles(textPipeline, appLog, flags.files, outputDir, flags.jobs)
}

// parseFlags defines and parses command-line flags; remaining arguments are input files.
func parseFlags(flagSet *flag.FlagSet, args []string) (appFlags, error) {
	var flags appFlags

	flagSet.StringVar(&flags.text, flagText, "", flagTextDesc)
	flagSet.StringVar(&flags.output, flagOutput, "", flagOutputDesc)
	flagSet.StringVar(&flags.dict, flagDict, "", flagDictDesc)
	flagSet.StringVar(&flags.config, flagConfig, "", flagConfigDesc)
	flagSet.BoolVar(&flags.verbose, flagVerbose, false, flagVerboseDesc)
	flagSet.IntVar(&flags.jobs, flagJobs, defaultJobs, flagJobsDesc)

	err := flagSet.Parse(args)
	if err != nil {
		return appFlags{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	flags.files = flagSet.Args()

	return flags, nil
}

// validateFlags checks required and conflicting arguments.
func validateFlags(flags appFlags) error {
	if flags.text == "" && len(flags.files) == 0 {
		return errNoInput
	}

	if flags.text != "" && len(flags.files) > 0 {
		return errBothInputs
	}

	if flags.jobs <= 0 {
		return errJobs
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf(errFailedToLoadConfig, err)
	}

	return cfg, nil
}

func setupLogger(dir string, verbose bool) (*logger.Logger, error) {
	logFileName := logFileNameDefault
	if verbose {
		logFileName = logFileNameVerbose
	}

	appLog, err := logger.New(dir, logFileName)
	if err != nil {
		return nil, fmt.Errorf(errFailedToInitLogger, err)
	}

	return appLog, nil
}

// buildPipeline loads the dictionary named by the flag or the configuration,
// falling back to the embedded one.
func buildPipeline(dictFlag string, cfg *config.Config) (*pipeline.Pipeline, int, error) {
	dictName := dictFlag
	if dictName == "" {
		dictName = cfg.Normalizer.DictionaryPath
	}

	dictionary := lexicon.Default()

	if dictName != "" {
		path, err := fsutil.GetDictionaryPath(dictName)
		if err != nil {
			return nil, 0, fmt.Errorf(errFailedToLoadDict, err)
		}

		dictionary, err = lexicon.LoadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf(errFailedToLoadDict, err)
		}
	}

	splitter, err := segment.New(dictionary, cfg.Normalizer.SplitCacheSize)
	if err != nil {
		return nil, 0, err
	}

	return pipeline.New(nsw.New(dictionary, splitter), pronounce.New(dictionary)), dictionary.Len(), nil
}

// processText prints the normalized text, its pronunciation and the word pairs.
func processText(textPipeline *pipeline.Pipeline, text string, w io.Writer) error {
	result, err := textPipeline.Run(text)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, outNormalized, result.Normalized)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, outMatched, result.Pronunciation)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, outPairsHeader)
	if err != nil {
		return err
	}

	return pipeline.WritePairs(w, result.Pairs)
}

// processFiles normalizes every input file, running up to jobs files at once.
func processFiles(
	textPipeline *pipeline.Pipeline,
	appLog *logger.Logger,
	files []string,
	outputDir string,
	jobs int,
) error {
	err := fsutil.EnsureDir(outputDir)
	if err != nil {
		return err
	}

	var group errgroup.Group

	group.SetLimit(jobs)

	for _, input := range files {
		group.Go(func() error {
			appLog.Info(logProcessingFile, input)

			err := processFile(textPipeline, input, outputDir)
			if err != nil {
				appLog.Error("%v", err)

				return err
			}

			return nil
		})
	}

	return group.Wait()
}

// processFile writes the normalized text, the pronunciation and the word pairs
// of one input file.
func processFile(textPipeline *pipeline.Pipeline, input, outputDir string) error {
	if !fsutil.IsValidTextFile(input) {
		return fmt.Errorf(errFailedToProcess, input, errNotATextInput)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf(errFailedToProcess, input, err)
	}

	result, err := textPipeline.Run(string(data))
	if err != nil {
		return fmt.Errorf(errFailedToProcess, input, err)
	}

	var pairs strings.Builder

	err = pipeline.WritePairs(&pairs, result.Pairs)
	if err != nil {
		return fmt.Errorf(errFailedToProcess, input, err)
	}

	outputs := []struct {
		suffix  string
		content string
	}{
		{suffix: suffixNormalized, content: result.Normalized + "\n"},
		{suffix: suffixPronounced, content: result.Pronunciation + "\n"},
		{suffix: suffixPairs, content: pairs.String()},
	}

	for _, output := range outputs {
		path := fsutil.OutputPath(outputDir, input, output.suffix)

		err = os.WriteFile(path, []byte(output.content), outputPermissions)
		if err != nil {
			return fmt.Errorf(errFailedToProcess, input, err)
		}
	}

	return nil
}
