// Package risk evaluates extracted health events against a profile and
// produces a reproducible, severity-ranked verdict. Rules are fixed and
// auditable: no probabilistic inference, no I/O, identical inputs always
// yield identical verdicts.
package risk
