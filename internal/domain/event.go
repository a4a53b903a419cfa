package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType classifies a structured health event extracted from raw text.
type EventType string

const (
	EventMeal       EventType = "meal"
	EventMedication EventType = "medication"
	EventSupplement EventType = "supplement"
	EventSymptom    EventType = "symptom"
)

// HealthEvent is a structured fact derived from a check's raw text.
// Field semantics depend on Type: meal events carry "meal" and "carbs",
// medication events carry "medication", supplement events carry "supplement"
// or "name". Events are immutable once persisted; only the extraction
// post-processor touches derived fields before persistence.
type HealthEvent struct {
	ID                 uuid.UUID      `json:"id"`
	CheckID            uuid.UUID      `json:"checkId"`
	Type               EventType      `json:"type"`
	Fields             map[string]any `json:"fields"`
	Confidence         float64        `json:"confidence"`
	Provenance         string         `json:"provenance"`
	NeedsClarification bool           `json:"needsClarification"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// StringField returns the named field as a string, or "" if the field is
// absent or not a string. Malformed fields are never an error condition.
func (e *HealthEvent) StringField(key string) string {
	if e.Fields == nil {
		return ""
	}
	s, _ := e.Fields[key].(string)
	return s
}

// IngestibleName returns the display name of the ingested item for
// medication and supplement events. Meal and symptom events have no
// ingestible name and return "".
func (e *HealthEvent) IngestibleName() string {
	switch e.Type {
	case EventMedication:
		return e.StringField("medication")
	case EventSupplement:
		if s := e.StringField("supplement"); s != "" {
			return s
		}
		return e.StringField("name")
	default:
		return ""
	}
}

// NormalizeName is the shared ingestible-name normalization: lowercase and
// trimmed. All matching in the engine and matcher is exact after this.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
