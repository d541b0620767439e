// Package dictionaries loads and validates the reference data consumed by the
// skill pipeline: the skills taxonomy, the tools dictionary, ignore rules, and
// the alias/canonical/synonym rule tables.
//
// Defaults ship embedded in the binary; any file present in an override
// directory replaces its embedded counterpart. The result is an immutable
// snapshot: hosts that hot-reload must load a fresh snapshot and swap the
// reference, never mutate one in place.
package dictionaries

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobskills/internal/schemas"
	"github.com/jonathan/jobskills/internal/types"
)

//go:embed defaults/*.json dictschemas/*.schema.json
var embedded embed.FS

// Resource file names, shared between the embedded defaults and override directories.
const (
	FileTaxonomy    = "taxonomy.json"
	FileTools       = "tools.json"
	FileIgnoreRules = "ignore_rules.json"
	FileRules       = "rules.json"
)

// rulesFile is the on-disk shape of rules.json.
type rulesFile struct {
	ForcedCoreSkills  []string            `json:"forced_core_skills"`
	SoftSkillPatterns []string            `json:"soft_skill_patterns"`
	CanonicalRules    map[string]string   `json:"canonical_rules"`
	SynonymGroups     map[string][]string `json:"synonym_groups"`
	AliasMap          map[string]string   `json:"alias_map"`
}

// LoadDefaults builds a snapshot from the embedded default dictionaries.
func LoadDefaults() (*types.Dictionaries, error) {
	return LoadDir("")
}

// LoadDir builds a snapshot, preferring files from dir and falling back to
// the embedded defaults for anything missing. An empty dir loads defaults only.
func LoadDir(dir string) (*types.Dictionaries, error) {
	dicts := &types.Dictionaries{}

	taxonomyData, err := readResource(dir, FileTaxonomy)
	if err != nil {
		return nil, err
	}
	if err := parseResource(FileTaxonomy, taxonomyData, &dicts.SkillsTaxonomy); err != nil {
		return nil, err
	}

	toolsData, err := readResource(dir, FileTools)
	if err != nil {
		return nil, err
	}
	if err := parseResource(FileTools, toolsData, &dicts.ToolsDictionary); err != nil {
		return nil, err
	}

	ignoreData, err := readResource(dir, FileIgnoreRules)
	if err != nil {
		return nil, err
	}
	if err := parseResource(FileIgnoreRules, ignoreData, &dicts.Ignore); err != nil {
		return nil, err
	}

	rulesData, err := readResource(dir, FileRules)
	if err != nil {
		return nil, err
	}
	var rules rulesFile
	if err := parseResource(FileRules, rulesData, &rules); err != nil {
		return nil, err
	}
	dicts.ForcedCoreSkills = rules.ForcedCoreSkills
	dicts.SoftSkillPattern = rules.SoftSkillPatterns
	dicts.CanonicalRules = rules.CanonicalRules
	dicts.SynonymGroups = rules.SynonymGroups
	dicts.AliasMap = rules.AliasMap

	if err := validateSnapshot(dicts); err != nil {
		return nil, err
	}
	return dicts, nil
}

// readResource returns the override file from dir when it exists, otherwise
// the embedded default.
func readResource(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Resource: name, Message: "failed to read override file", Cause: err}
		}
	}

	data, err := embedded.ReadFile("defaults/" + name)
	if err != nil {
		return nil, &LoadError{Resource: name, Message: "embedded default missing", Cause: err}
	}
	return data, nil
}

// parseResource schema-validates the raw document and unmarshals it.
func parseResource(name string, data []byte, target any) error {
	schema, err := embedded.ReadFile("dictschemas/" + schemaName(name))
	if err != nil {
		return &LoadError{Resource: name, Message: "embedded schema missing", Cause: err}
	}
	if err := schemas.ValidateBytes(name, schema, data); err != nil {
		return &LoadError{Resource: name, Message: "schema validation failed", Cause: err}
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &LoadError{Resource: name, Message: "failed to parse JSON", Cause: err}
	}
	return nil
}

func schemaName(resource string) string {
	ext := filepath.Ext(resource)
	return resource[:len(resource)-len(ext)] + ".schema.json"
}

// validateSnapshot enforces struct-level constraints and compiles every
// configured pattern so a bad rule surfaces at load time instead of being
// silently skipped at classification time.
func validateSnapshot(dicts *types.Dictionaries) error {
	v := validator.New()
	for i, entry := range dicts.SkillsTaxonomy {
		if err := v.Struct(entry); err != nil {
			return &LoadError{
				Resource: FileTaxonomy,
				Message:  fmt.Sprintf("entry %d (%q) is invalid", i, entry.Name),
				Cause:    err,
			}
		}
	}
	for i, entry := range dicts.ToolsDictionary {
		if err := v.Struct(entry); err != nil {
			return &LoadError{
				Resource: FileTools,
				Message:  fmt.Sprintf("entry %d (%q) is invalid", i, entry.Name),
				Cause:    err,
			}
		}
	}

	for _, p := range dicts.SoftSkillPattern {
		if _, err := regexp.Compile(p); err != nil {
			return &LoadError{Resource: FileRules, Message: fmt.Sprintf("invalid soft-skill pattern %q", p), Cause: err}
		}
	}
	lists := map[string]types.IgnoreList{
		"soft_skills":          dicts.Ignore.SoftSkills,
		"junk_phrases":         dicts.Ignore.JunkPhrases,
		"degree_and_education": dicts.Ignore.DegreeAndEducation,
		"too_generic":          dicts.Ignore.TooGeneric,
	}
	for listName, list := range lists {
		for _, p := range list.Patterns {
			if _, err := regexp.Compile(p.Pattern); err != nil {
				return &LoadError{
					Resource: FileIgnoreRules,
					Message:  fmt.Sprintf("invalid pattern %q in %s", p.Pattern, listName),
					Cause:    err,
				}
			}
		}
	}
	return nil
}
