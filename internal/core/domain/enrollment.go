package domain

import "github.com/shopspring/decimal"

// ClassSection is a grade/section pair with a seat capacity.
type ClassSection struct {
	ClassID  string `json:"classID"`
	Grade    string `json:"grade"`
	Section  string `json:"section"`
	Capacity int    `json:"capacity"`
	Enrolled int    `json:"enrolled"`
	AuditFields
}

// FeeSchedule holds the configured fee amounts for one grade.
type FeeSchedule struct {
	Grade        string          `json:"grade"`
	AdmissionFee decimal.Decimal `json:"admissionFee"`
	TuitionFee   decimal.Decimal `json:"tuitionFee"`
}

// Student links an enrolled student to its user identity and class section.
type Student struct {
	StudentID string `json:"studentID"`
	UserID    string `json:"userID"`
	ClassID   string `json:"classID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Grade     string `json:"grade"`
	Section   string `json:"section"`
	AuditFields
}

// StepStatus is the outcome of a single enrollment saga step.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepOutcome records what happened to one step of the admission workflow so
// a partially failed enrollment can be remediated by hand.
type StepOutcome struct {
	Step   string     `json:"step"`
	Status StepStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
}

// EnrollmentResult is the full record of an admission approval: the entities
// it created, the per-step outcomes, and any best-effort failures surfaced as
// warnings rather than aborts.
type EnrollmentResult struct {
	UserID         string        `json:"userID"`
	StudentID      string        `json:"studentID"`
	ClassID        string        `json:"classID"`
	Username       string        `json:"username"`
	AdmissionFeeID string        `json:"admissionFeeID,omitempty"`
	TuitionFeeID   string        `json:"tuitionFeeID,omitempty"`
	Steps          []StepOutcome `json:"steps"`
	Warnings       []string      `json:"warnings,omitempty"`
}
