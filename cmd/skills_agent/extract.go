package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobskills/internal/config"
	"github.com/jonathan/jobskills/internal/dictionaries"
	"github.com/jonathan/jobskills/internal/fuzzy"
	"github.com/jonathan/jobskills/internal/ingestion"
	"github.com/jonathan/jobskills/internal/logger"
	"github.com/jonathan/jobskills/internal/observability"
	"github.com/jonathan/jobskills/internal/pipeline"
	"github.com/jonathan/jobskills/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and normalize skills from a job posting",
	Long:  "Extract skill and tool mentions from a job-posting text or HTML file (use - for stdin), classify and normalize them, and emit the structured result as JSON.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractConfigFile string
	extractDictsDir   string
	extractMinConf    float64
	extractMaxSkills  int
	extractNoFuzzy    bool
	extractNoAliases  bool
	extractVerbose    bool
	extractDebug      bool
	extractJSONLogs   bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to job posting text or HTML file, or - for stdin (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfigFile, "config", "", "Path to JSON config file")
	extractCmd.Flags().StringVar(&extractDictsDir, "dicts", "", "Directory of dictionary overrides (default: embedded dictionaries)")
	extractCmd.Flags().Float64Var(&extractMinConf, "min-confidence", 0, "Minimum confidence for a skill to count (0 = default)")
	extractCmd.Flags().IntVar(&extractMaxSkills, "max-skills", 0, "Cap on total extracted skills (0 = unlimited)")
	extractCmd.Flags().BoolVar(&extractNoFuzzy, "no-fuzzy", false, "Disable the fuzzy-matching normalization pass")
	extractCmd.Flags().BoolVar(&extractNoAliases, "no-aliases", false, "Disable the alias-table normalization pass")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	extractCmd.Flags().BoolVar(&extractDebug, "debug", false, "Enable debug-level logging")
	extractCmd.Flags().BoolVar(&extractJSONLogs, "json-logs", false, "Emit logs as JSON instead of console format")
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

// resolveConfig layers configuration sources: environment variables first,
// then the optional config file, then explicit CLI flags.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	if extractConfigFile != "" {
		fileCfg, err := config.LoadConfig(extractConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = cfg.Merge(fileCfg)
	}

	flags := &config.Config{
		DictionariesDir: extractDictsDir,
		MinConfidence:   extractMinConf,
		MaxSkills:       extractMaxSkills,
		DisableFuzzy:    extractNoFuzzy,
		DisableAliases:  extractNoAliases,
		Verbose:         extractVerbose,
		JSONLogs:        extractJSONLogs,
		Debug:           extractDebug,
	}
	cfg = cfg.Merge(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildExtractor loads dictionaries per the config and composes the pipeline.
func buildExtractor(cfg *config.Config) (*pipeline.Extractor, error) {
	var dicts *types.Dictionaries
	var err error
	if cfg.DictionariesDir != "" {
		dicts, err = dictionaries.LoadDir(cfg.DictionariesDir)
	} else {
		dicts, err = dictionaries.LoadDefaults()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionaries: %w", err)
	}

	var matcher fuzzy.Matcher
	if !cfg.DisableFuzzy {
		entries := make([]types.TaxonomyEntry, 0, len(dicts.SkillsTaxonomy)+len(dicts.ToolsDictionary))
		entries = append(entries, dicts.SkillsTaxonomy...)
		for _, t := range dicts.ToolsDictionary {
			entries = append(entries, t.AsTaxonomyEntry())
		}
		matcher = fuzzy.NewLevenshteinMatcher(entries)
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return pipeline.New(pipeline.Options{
		Dictionaries:   dicts,
		Matcher:        matcher,
		MinConfidence:  cfg.MinConfidence,
		MaxSkills:      cfg.MaxSkills,
		DisableAliases: cfg.DisableAliases,
		Logger:         log,
	}), nil
}

// writeResult marshals an extraction result and writes it to the given path,
// or to stdout when the path is empty.
func writeResult(result *types.ExtractionResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func runExtract(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	extractor, err := buildExtractor(cfg)
	if err != nil {
		return err
	}

	text, err := ingestion.ReadInput(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result := extractor.Extract(text)

	if err := writeResult(result, extractOutputFile); err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintExtractionResult(result)
		printer.PrintStageCounts(result.Debug)
	}
	return nil
}
