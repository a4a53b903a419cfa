// Package knowledge holds the versioned knowledge base: the allergen
// taxonomy, the functional-class registry, and the advice registry.
//
// Each structure is loaded once (explicit path > env var > bundled default),
// is immutable after load, and is passed explicitly to the components that
// need it. Loading performs no network access and no randomness; two loads
// from the same source are byte-for-byte equal after JSON re-serialization.
package knowledge
