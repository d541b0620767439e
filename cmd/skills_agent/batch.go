package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobskills/internal/ingestion"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Extract skills from multiple job postings concurrently",
	Long:  "Run the extraction pipeline over multiple job-posting files concurrently. Each input file <name> produces <name>.skills.json next to it, or under --out-dir when set.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var (
	batchOutDir      string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory for output files (default: next to each input)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Maximum number of files processed in parallel")
	batchCmd.Flags().StringVar(&extractConfigFile, "config", "", "Path to JSON config file")
	batchCmd.Flags().StringVar(&extractDictsDir, "dicts", "", "Directory of dictionary overrides (default: embedded dictionaries)")
	batchCmd.Flags().Float64Var(&extractMinConf, "min-confidence", 0, "Minimum confidence for a skill to count (0 = default)")
	batchCmd.Flags().IntVar(&extractMaxSkills, "max-skills", 0, "Cap on total extracted skills (0 = unlimited)")
	batchCmd.Flags().BoolVar(&extractNoFuzzy, "no-fuzzy", false, "Disable the fuzzy-matching normalization pass")
	batchCmd.Flags().BoolVar(&extractNoAliases, "no-aliases", false, "Disable the alias-table normalization pass")
	batchCmd.Flags().BoolVar(&extractDebug, "debug", false, "Enable debug-level logging")
	batchCmd.Flags().BoolVar(&extractJSONLogs, "json-logs", false, "Emit logs as JSON instead of console format")

	rootCmd.AddCommand(batchCmd)
}

// outputPath derives the result path for an input file: <name>.skills.json,
// placed in outDir when set, otherwise alongside the input.
func outputPath(inputFile, outDir string) string {
	base := filepath.Base(inputFile)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	name := base + ".skills.json"
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(inputFile), name)
}

func runBatch(_ *cobra.Command, args []string) error {
	if batchConcurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", batchConcurrency)
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	// One extractor shared across workers; Extract is safe for concurrent use.
	extractor, err := buildExtractor(cfg)
	if err != nil {
		return err
	}

	if batchOutDir != "" {
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var g errgroup.Group
	g.SetLimit(batchConcurrency)

	for _, inputFile := range args {
		inputFile := inputFile
		g.Go(func() error {
			text, err := ingestion.ReadInput(inputFile)
			if err != nil {
				return fmt.Errorf("%s: failed to read input: %w", inputFile, err)
			}

			result := extractor.Extract(text)

			outFile := outputPath(inputFile, batchOutDir)
			if err := writeResult(result, outFile); err != nil {
				return fmt.Errorf("%s: %w", inputFile, err)
			}

			fmt.Fprintf(os.Stderr, "%s: %d skills -> %s\n",
				inputFile, len(result.Required)+len(result.Desired), outFile)
			return nil
		})
	}

	return g.Wait()
}
