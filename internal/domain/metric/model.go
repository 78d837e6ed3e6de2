package metric

import "time"

// Metric is one logged health measurement for a patient.
type Metric struct {
	ID         int64     `db:"id" json:"-"`
	PatientID  string    `db:"patient_id" json:"patient_id"`
	MetricType string    `db:"metric_type" json:"metric_type"`
	Value      float64   `db:"value" json:"value"`
	Unit       *string   `db:"unit" json:"unit,omitempty"`
	Date       time.Time `db:"date" json:"date"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	Category   *string   `db:"category" json:"category,omitempty"`
}

// TypeCount pairs a metric type with how often it has been logged.
type TypeCount struct {
	MetricType string `json:"metric_type"`
	Count      int    `json:"count"`
}
