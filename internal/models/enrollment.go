package models

import "github.com/shopspring/decimal"

// ClassSection is the database representation of a grade/section class.
type ClassSection struct {
	ClassID  string
	Grade    string
	Section  string
	Capacity int
	Enrolled int
	AuditFields
}

// FeeSchedule is the database representation of per-grade fee configuration.
type FeeSchedule struct {
	Grade        string
	AdmissionFee decimal.Decimal
	TuitionFee   decimal.Decimal
}

// Student is the database representation of an enrolled student.
type Student struct {
	StudentID string
	UserID    string
	ClassID   string
	Name      string
	Email     string
	Grade     string
	Section   string
	AuditFields
}
