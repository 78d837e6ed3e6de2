package export

import "time"

// MetricRow is one exported health metric joined with its patient's name.
type MetricRow struct {
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	MetricType  string    `json:"metric_type"`
	Value       float64   `json:"value"`
	Unit        *string   `json:"unit,omitempty"`
	Date        time.Time `json:"date"`
	Notes       *string   `json:"notes,omitempty"`
	Category    *string   `json:"category,omitempty"`
}

// RecordRow is one exported medical record joined with its patient's name.
type RecordRow struct {
	PatientID    string    `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	RecordType   string    `json:"record_type"`
	Description  *string   `json:"description,omitempty"`
	DoctorName   *string   `json:"doctor_name,omitempty"`
	FacilityName *string   `json:"facility_name,omitempty"`
	RecordDate   time.Time `json:"record_date"`
	FileName     *string   `json:"file_name,omitempty"`
	FileSize     *int64    `json:"file_size,omitempty"`
	UploadDate   time.Time `json:"upload_date"`
}
