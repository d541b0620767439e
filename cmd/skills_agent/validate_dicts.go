package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobskills/internal/dictionaries"
	"github.com/jonathan/jobskills/internal/types"
)

var validateDictsCmd = &cobra.Command{
	Use:   "validate-dicts",
	Short: "Validate a directory of dictionary override files",
	Long:  "Load a dictionaries directory, validate every file against its JSON schema and entry constraints, and report the loaded counts. With no --dicts flag the embedded defaults are checked.",
	RunE:  runValidateDicts,
}

var validateDictsDir string

func init() {
	validateDictsCmd.Flags().StringVar(&validateDictsDir, "dicts", "", "Directory of dictionary files to validate (default: embedded dictionaries)")

	rootCmd.AddCommand(validateDictsCmd)
}

func runValidateDicts(_ *cobra.Command, _ []string) error {
	var dicts *types.Dictionaries
	var err error
	if validateDictsDir != "" {
		dicts, err = dictionaries.LoadDir(validateDictsDir)
	} else {
		dicts, err = dictionaries.LoadDefaults()
	}
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Dictionaries OK: %d taxonomy entries, %d tools, %d canonical rules, %d synonym groups, %d aliases\n",
		len(dicts.SkillsTaxonomy), len(dicts.ToolsDictionary),
		len(dicts.CanonicalRules), len(dicts.SynonymGroups), len(dicts.AliasMap))
	return nil
}
