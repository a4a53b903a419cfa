// Command knowledge-check validates knowledge base files without starting the
// server: it loads the allergen taxonomy, functional registry, and advice
// registry, then reports advice entries whose target is missing from the
// taxonomy. Intended for CI and for editors of the knowledge files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/knowledge"
)

func main() {
	taxonomyPath := flag.String("taxonomy", "", "path to allergen taxonomy JSON (default: env or bundled)")
	registryPath := flag.String("registry", "", "path to functional registry JSON (default: env or bundled)")
	advicePath := flag.String("advice", "", "path to advice registry JSON (default: env or bundled)")
	flag.Parse()

	taxonomy, err := knowledge.LoadAllergenTaxonomy(*taxonomyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "allergen taxonomy: %v\n", err)
		os.Exit(1)
	}
	registry, err := knowledge.LoadFunctionalRegistry(*registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "functional registry: %v\n", err)
		os.Exit(1)
	}
	advice, err := knowledge.LoadAdviceRegistry(*advicePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "advice registry: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("taxonomy %s, registry %s, advice %s\n", taxonomy.Version, registry.Version, advice.Version)

	orphans := knowledge.ValidateNoOrphanAdvice(taxonomy, advice)
	if len(orphans) > 0 {
		fmt.Fprintf(os.Stderr, "%d advice entries target unknown taxonomy nodes:\n", len(orphans))
		for _, target := range orphans {
			fmt.Fprintf(os.Stderr, "  %s\n", target)
		}
		os.Exit(1)
	}

	fmt.Println("ok: every advice entry targets a known taxonomy node")
}
