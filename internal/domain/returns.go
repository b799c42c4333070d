package domain

import "time"

// LoanStatus tracks a reservation's lifecycle.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusReturned LoanStatus = "RETURNED"
)

// Loan is an outstanding reservation of an item by a borrower.
type Loan struct {
	ID        int32          `json:"id"`
	ItemID    int32          `json:"item_id"`
	UserID    int32          `json:"user_id"`
	ItemValue float64        `json:"item_value"`
	Condition ConditionGrade `json:"condition"`
	DueDate   time.Time      `json:"due_date"`
	Status    LoanStatus     `json:"status"`
	CreatedOn time.Time      `json:"created_on"`
}

// ReturnEvent records the moment an item came back. A reservation has at
// most one return event; duplicates are rejected before creation.
type ReturnEvent struct {
	ID                int32          `json:"id"`
	ReservationID     int32          `json:"reservation_id"`
	ItemID            int32          `json:"item_id"`
	UserID            int32          `json:"user_id"`
	ReturnDate        time.Time      `json:"return_date"`
	ConditionOnReturn ConditionGrade `json:"condition_on_return"`
	IsOverdue         bool           `json:"is_overdue"`
	DaysOverdue       int            `json:"days_overdue"`
	PenaltyAmount     float64        `json:"penalty_amount"`
	PenaltyReason     string         `json:"penalty_reason,omitempty"`
	Assessed          bool           `json:"assessed"`
	CreatedOn         time.Time      `json:"created_on"`
}

// OverdueLoan is one row of the still-outstanding overdue feed consumed by
// the severity aggregation.
type OverdueLoan struct {
	ReservationID int32     `json:"reservation_id"`
	ItemID        int32     `json:"item_id"`
	UserID        int32     `json:"user_id"`
	ItemValue     float64   `json:"item_value"`
	DueDate       time.Time `json:"due_date"`
	DaysOverdue   int       `json:"days_overdue"`
}
