// Package extraction provides the fixed-rule post-processing applied to raw
// extraction output before it is scored or persisted, plus a deterministic
// keyword-based reference extractor. The production extractor may be
// model-driven and is injected behind domain.Extractor; the rules here only
// consume its output shape.
package extraction
