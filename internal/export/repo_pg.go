package export

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the joined rows the exporters flatten into files.
type Repository interface {
	Metrics(ctx context.Context) ([]MetricRow, error)
	Records(ctx context.Context) ([]RecordRow, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Metrics(ctx context.Context) ([]MetricRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.patient_id, p.first_name || ' ' || p.last_name,
		       m.metric_type, m.value, m.unit, m.date, m.notes, m.category
		FROM health_metrics m
		JOIN patients p ON p.patient_id = m.patient_id
		ORDER BY m.date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricRow
	for rows.Next() {
		var m MetricRow
		if err := rows.Scan(&m.PatientID, &m.PatientName, &m.MetricType, &m.Value,
			&m.Unit, &m.Date, &m.Notes, &m.Category); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repoPG) Records(ctx context.Context) ([]RecordRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rec.patient_id, p.first_name || ' ' || p.last_name,
		       rec.record_type, rec.description, rec.doctor_name, rec.facility_name,
		       rec.record_date, rec.file_name, rec.file_size, rec.upload_date
		FROM medical_records rec
		JOIN patients p ON p.patient_id = rec.patient_id
		ORDER BY rec.record_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecordRow
	for rows.Next() {
		var rr RecordRow
		if err := rows.Scan(&rr.PatientID, &rr.PatientName, &rr.RecordType, &rr.Description,
			&rr.DoctorName, &rr.FacilityName, &rr.RecordDate, &rr.FileName, &rr.FileSize,
			&rr.UploadDate); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
