package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogAction names what happened to an entity.
type LogAction string

const (
	ActionTemplateCreated     LogAction = "TEMPLATE_CREATED"
	ActionReturnRecorded      LogAction = "RETURN_RECORDED"
	ActionAssessmentSubmitted LogAction = "ASSESSMENT_SUBMITTED"
	ActionDamageReported      LogAction = "DAMAGE_REPORTED"
	ActionDamageStatusChanged LogAction = "DAMAGE_STATUS_CHANGED"
	ActionPenaltyApplied      LogAction = "PENALTY_APPLIED"
)

// EntityType names the kind of entity a log entry describes. It keys the
// payload union used when decoding historical entries.
type EntityType string

const (
	EntityTemplate     EntityType = "TEMPLATE"
	EntityReturn       EntityType = "RETURN"
	EntityAssessment   EntityType = "ASSESSMENT"
	EntityDamageReport EntityType = "DAMAGE_REPORT"
	EntityReputation   EntityType = "REPUTATION"
)

// EventLogEntry is one row of the append-only domain ledger. Entries are
// never mutated or deleted; later entries referencing the same entity
// supersede earlier ones. Payload is an opaque, versioned JSON document.
type EventLogEntry struct {
	ID         int64           `json:"id"`
	EntryID    uuid.UUID       `json:"entry_id"`
	Action     LogAction       `json:"action"`
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	UserID     int32           `json:"user_id"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EventLogFilter narrows event log reads. Zero values mean "no filter".
type EventLogFilter struct {
	EntityType EntityType
	EntityID   string
	UserID     int32
	From       time.Time
	To         time.Time
	Limit      int32
}

// AssessmentPayload is the logged shape of an assessment submission.
// SchemaVersion 1 predates the penalty override fields; readers default
// anything absent rather than fail.
type AssessmentPayload struct {
	SchemaVersion     int            `json:"schema_version"`
	ReturnID          int32          `json:"return_id"`
	ItemID            int32          `json:"item_id"`
	UserID            int32          `json:"user_id"`
	TemplateID        int32          `json:"template_id"`
	OriginalCondition ConditionGrade `json:"original_condition"`
	FinalCondition    ConditionGrade `json:"final_condition"`
	OverallScore      float64        `json:"overall_score"`
	FinalPenalty      float64        `json:"final_penalty"`
	Overridden        bool           `json:"overridden,omitempty"`
}

// ReturnPayload is the logged shape of a recorded return.
type ReturnPayload struct {
	SchemaVersion     int            `json:"schema_version"`
	ReservationID     int32          `json:"reservation_id"`
	ItemID            int32          `json:"item_id"`
	UserID            int32          `json:"user_id"`
	ConditionOnReturn ConditionGrade `json:"condition_on_return"`
	IsOverdue         bool           `json:"is_overdue"`
	DaysOverdue       int            `json:"days_overdue"`
	PenaltyAmount     float64        `json:"penalty_amount"`
}

// DamagePayload is the logged shape of a damage report event.
type DamagePayload struct {
	SchemaVersion    int            `json:"schema_version"`
	ReturnID         int32          `json:"return_id"`
	ItemID           int32          `json:"item_id"`
	UserID           int32          `json:"user_id"`
	Severity         DamageSeverity `json:"severity"`
	AffectsUsability bool           `json:"affects_usability"`
	Status           DamageStatus   `json:"status"`
	PenaltyPoints    float64        `json:"penalty_points"`
}

// ReputationPayload is the logged shape of a trust score adjustment.
type ReputationPayload struct {
	SchemaVersion int     `json:"schema_version"`
	UserID        int32   `json:"user_id"`
	Change        float64 `json:"change"`
	PreviousScore float64 `json:"previous_score"`
	NewScore      float64 `json:"new_score"`
	Reason        string  `json:"reason"`
}

// CurrentPayloadSchema is the schema version writers stamp on new payloads.
const CurrentPayloadSchema = 2

// DecodePayload unmarshals an entry's payload into its typed shape, keyed by
// EntityType. Historical payloads written before CurrentPayloadSchema may
// lack newer fields; they decode with zero-value defaults. Unknown entity
// types and malformed JSON return an error so callers can skip the row.
func (e *EventLogEntry) DecodePayload() (any, error) {
	decode := func(v any) (any, error) {
		if err := json.Unmarshal(e.Payload, v); err != nil {
			return nil, fmt.Errorf("decode %s payload for entry %d: %w", e.EntityType, e.ID, err)
		}
		return v, nil
	}
	switch e.EntityType {
	case EntityAssessment:
		p := &AssessmentPayload{}
		return decode(p)
	case EntityReturn:
		p := &ReturnPayload{}
		return decode(p)
	case EntityDamageReport:
		p := &DamagePayload{}
		return decode(p)
	case EntityReputation:
		p := &ReputationPayload{}
		return decode(p)
	case EntityTemplate:
		p := &AssessmentTemplate{}
		return decode(p)
	default:
		return nil, fmt.Errorf("unknown entity type %q in entry %d", e.EntityType, e.ID)
	}
}

// EncodePayload marshals a typed payload for appending.
func EncodePayload(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}
