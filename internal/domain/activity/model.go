package activity

import "time"

// Activity is one audit-log entry, written as a side effect of every
// patient, health-metric, and medical-record creation. Activities are
// append-only and never updated.
type Activity struct {
	ID           int64     `db:"id" json:"-"`
	PatientID    *string   `db:"patient_id" json:"patient_id,omitempty"`
	PatientName  *string   `db:"patient_name" json:"patient_name,omitempty"`
	ActivityType string    `db:"activity_type" json:"type"`
	Description  string    `db:"description" json:"description"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
}

// PatientCount pairs a denormalized patient display name with its
// activity count. Used for the most-active-patients feed.
type PatientCount struct {
	PatientName string `json:"patient_name"`
	Count       int    `json:"count"`
}

// Activity types written by the domain services.
const (
	TypePatientAdded = "Patient Added"
	TypeMetricAdded  = "Health Metric Added"
	TypeRecordAdded  = "Medical Record Added"
)
