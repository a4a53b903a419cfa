package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
)

// The bundled knowledge base ships inside the binary; loading it performs no
// runtime file I/O.
//
//go:embed data/*.json
var defaultFiles embed.FS

// defaultKnowledgeVersion stamps the bundled registry, which has no version
// envelope of its own.
const defaultKnowledgeVersion = "2025.08.1"

func defaultTaxonomy() *Taxonomy {
	obj := mustReadDefault("data/allergen_taxonomy.json")
	t, err := parseTaxonomy(obj)
	if err != nil {
		panic(fmt.Sprintf("bundled allergen taxonomy is invalid: %v", err))
	}
	return t
}

func defaultRegistry() *Registry {
	obj := mustReadDefault("data/functional_registry.json")
	classes := make(map[string]ClassEntry, len(obj))
	for key, raw := range obj {
		var entry ClassEntry
		if err := reparse(raw, &entry); err != nil {
			panic(fmt.Sprintf("bundled functional registry is invalid: %v", err))
		}
		classes[key] = entry
	}
	return &Registry{Version: defaultKnowledgeVersion, Classes: classes}
}

func defaultAdvice() *AdviceRegistry {
	obj := mustReadDefault("data/advice_registry.json")
	advice := &AdviceRegistry{Version: stringOr(obj["version"], versionUnknown)}
	if err := reparse(obj["entries"], &advice.Entries); err != nil {
		panic(fmt.Sprintf("bundled advice registry is invalid: %v", err))
	}
	return advice
}

// mustReadDefault panics on failure: the embedded defaults are part of the
// binary and cannot legitimately be missing or malformed.
func mustReadDefault(name string) map[string]any {
	data, err := defaultFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("bundled knowledge file %s missing: %v", name, err))
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		panic(fmt.Sprintf("bundled knowledge file %s is invalid JSON: %v", name, err))
	}
	return obj
}
