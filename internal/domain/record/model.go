package record

import "time"

// Record is one medical document entry. File fields are nil for entries
// registered without an upload.
type Record struct {
	ID           int64     `db:"id" json:"-"`
	PatientID    string    `db:"patient_id" json:"patient_id"`
	RecordType   string    `db:"record_type" json:"record_type"`
	Description  *string   `db:"description" json:"description,omitempty"`
	DoctorName   *string   `db:"doctor_name" json:"doctor_name,omitempty"`
	FacilityName *string   `db:"facility_name" json:"facility_name,omitempty"`
	RecordDate   time.Time `db:"record_date" json:"record_date"`
	FilePath     *string   `db:"file_path" json:"file_path,omitempty"`
	FileName     *string   `db:"file_name" json:"file_name,omitempty"`
	FileType     *string   `db:"file_type" json:"file_type,omitempty"`
	FileSize     *int64    `db:"file_size" json:"file_size,omitempty"`
	UploadDate   time.Time `db:"upload_date" json:"upload_date"`
}

// TypeCount pairs a record type with its occurrence count.
type TypeCount struct {
	RecordType string `json:"record_type"`
	Count      int    `json:"count"`
}
