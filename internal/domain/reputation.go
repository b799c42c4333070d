package domain

import "time"

// ReputationSourceDamageReport marks ledger entries produced by an approved
// damage report. The (source_type, source_id) pair is unique, which is what
// makes penalty application idempotent.
const ReputationSourceDamageReport = "DAMAGE_REPORT"

// ReputationEntry is one append-only adjustment to a borrower's trust score.
// NewScore is always clamp(PreviousScore + Change, 0, +inf); the user's
// current score is the latest NewScore.
type ReputationEntry struct {
	ID            int32     `json:"id"`
	UserID        int32     `json:"user_id"`
	Change        float64   `json:"change"`
	Reason        string    `json:"reason"`
	PreviousScore float64   `json:"previous_score"`
	NewScore      float64   `json:"new_score"`
	SourceType    string    `json:"source_type"`
	SourceID      int32     `json:"source_id"`
	CreatedOn     time.Time `json:"created_on"`
}
