package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
)

// Environment variables consulted when no explicit override path is given.
const (
	EnvTaxonomyPath = "ALLERGEN_TAXONOMY_PATH"
	EnvRegistryPath = "FUNCTIONAL_REGISTRY_PATH"
	EnvAdvicePath   = "ADVICE_REGISTRY_PATH"
)

// versionUnknown is reported when a knowledge file omits its version.
const versionUnknown = "unknown"

// LoadAllergenTaxonomy loads the allergen taxonomy. Source resolution:
// explicit overridePath, then ALLERGEN_TAXONOMY_PATH, then the bundled
// default. Once an override path is requested there is no fallback to the
// default: a missing or malformed file fails fast.
func LoadAllergenTaxonomy(overridePath string) (*Taxonomy, error) {
	path := resolvePath(overridePath, EnvTaxonomyPath)
	if path == "" {
		return defaultTaxonomy(), nil
	}

	obj, err := readObject(path)
	if err != nil {
		return nil, err
	}
	return parseTaxonomy(obj)
}

// LoadFunctionalRegistry loads the functional-class registry. The file is a
// flat classKey -> entry mapping; no version envelope is required, so
// file-loaded registries carry version "unknown".
func LoadFunctionalRegistry(overridePath string) (*Registry, error) {
	path := resolvePath(overridePath, EnvRegistryPath)
	if path == "" {
		return defaultRegistry(), nil
	}

	obj, err := readObject(path)
	if err != nil {
		return nil, err
	}

	classes := make(map[string]ClassEntry, len(obj))
	for key, raw := range obj {
		var entry ClassEntry
		if err := reparse(raw, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse functional class %q in %s: %w", key, path, err)
		}
		if entry.Members == nil {
			entry.Members = []string{}
		}
		classes[key] = entry
	}
	return &Registry{Version: versionUnknown, Classes: classes}, nil
}

// LoadAdviceRegistry loads the advice registry, resolving the source the
// same way as the other loaders.
func LoadAdviceRegistry(overridePath string) (*AdviceRegistry, error) {
	path := resolvePath(overridePath, EnvAdvicePath)
	if path == "" {
		return defaultAdvice(), nil
	}

	obj, err := readObject(path)
	if err != nil {
		return nil, err
	}

	advice := &AdviceRegistry{Version: stringOr(obj["version"], versionUnknown), Entries: []AdviceEntry{}}
	if raw, ok := obj["entries"]; ok {
		if err := reparse(raw, &advice.Entries); err != nil {
			return nil, fmt.Errorf("failed to parse advice entries in %s: %w", path, err)
		}
	}
	return advice, nil
}

func resolvePath(overridePath, envVar string) string {
	if overridePath != "" {
		return overridePath
	}
	return os.Getenv(envVar)
}

// readObject reads a knowledge file and requires its top-level value to be a
// JSON object. Errors identify the offending path.
func readObject(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file %s: %w", path, err)
	}

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("knowledge file %s is not valid JSON: %w", path, err)
	}

	obj, ok := top.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("knowledge file %s: top-level value is not a JSON object", path)
	}
	return obj, nil
}

// parseTaxonomy fills missing sub-fields with safe empty defaults. Only the
// version gets a sentinel default; nothing else fails on absence.
func parseTaxonomy(obj map[string]any) (*Taxonomy, error) {
	t := &Taxonomy{
		Version:       stringOr(obj["version"], versionUnknown),
		Nodes:         map[string]TaxonomyNode{},
		Severity:      map[string]int{},
		CrossReactive: []CrossReactiveGroup{},
		Aliases:       map[string][]string{},
	}

	if raw, ok := obj["taxonomy"]; ok {
		if err := reparse(raw, &t.Nodes); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy nodes: %w", err)
		}
	}
	if raw, ok := obj["severity"]; ok {
		if err := reparse(raw, &t.Severity); err != nil {
			return nil, fmt.Errorf("failed to parse severity table: %w", err)
		}
	}
	if raw, ok := obj["crossReactive"]; ok {
		if err := reparse(raw, &t.CrossReactive); err != nil {
			return nil, fmt.Errorf("failed to parse cross-reactive groups: %w", err)
		}
	}
	if raw, ok := obj["aliases"]; ok {
		if err := reparse(raw, &t.Aliases); err != nil {
			return nil, fmt.Errorf("failed to parse aliases: %w", err)
		}
	}
	return t, nil
}

// reparse round-trips an already-decoded JSON value into a typed structure.
func reparse(value any, target any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func stringOr(value any, fallback string) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fallback
}
