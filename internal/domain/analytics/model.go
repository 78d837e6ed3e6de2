package analytics

import "github.com/medtrack/medtrack/internal/domain/activity"

// PatientStatistics summarizes the registered population.
type PatientStatistics struct {
	Total      int     `json:"total_patients"`
	Male       int     `json:"male"`
	Female     int     `json:"female"`
	Other      int     `json:"other"`
	AverageAge float64 `json:"average_age"`
}

// AgeBucket is one bar of the age histogram.
type AgeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Overview is the dashboard payload: headline counts, storage figures, and
// the recent-activity feeds.
type Overview struct {
	TotalPatients    int                     `json:"total_patients"`
	TotalMetrics     int                     `json:"total_metrics"`
	TotalRecords     int                     `json:"total_records"`
	ActivePatients   int                     `json:"active_patients"`
	CompleteProfiles int                     `json:"complete_profiles"`
	RecentRecords    int                     `json:"recent_records"`
	DatabaseSize     string                  `json:"database_size"`
	TotalFileSize    string                  `json:"total_file_size"`
	RecentActivity   []*activity.Activity    `json:"recent_activity"`
	MostActive       []activity.PatientCount `json:"most_active_patients"`
}
