package metric

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const metricCols = `id, patient_id, metric_type, value, unit, date, notes, category`

func scanMetric(row pgx.Row) (*Metric, error) {
	var m Metric
	err := row.Scan(&m.ID, &m.PatientID, &m.MetricType, &m.Value, &m.Unit, &m.Date, &m.Notes, &m.Category)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Metric) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO health_metrics (patient_id, metric_type, value, unit, date, notes, category)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`,
		m.PatientID, m.MetricType, m.Value, m.Unit, m.Date, m.Notes, m.Category).Scan(&m.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPatientNotFound
		}
		return err
	}
	return nil
}

func (r *repoPG) ForPatient(ctx context.Context, patientID, metricType string) ([]*Metric, error) {
	sql := `SELECT ` + metricCols + ` FROM health_metrics WHERE patient_id = $1`
	args := []interface{}{patientID}
	if metricType != "" {
		sql += ` AND metric_type = $2`
		args = append(args, metricType)
	}
	sql += ` ORDER BY date DESC`

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMetrics(rows)
}

func (r *repoPG) Recent(ctx context.Context, limit int) ([]*Metric, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+metricCols+` FROM health_metrics ORDER BY date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMetrics(rows)
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM health_metrics`).Scan(&n)
	return n, err
}

func (r *repoPG) CommonTypes(ctx context.Context, limit int) ([]TypeCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT metric_type, COUNT(id)
		FROM health_metrics
		GROUP BY metric_type
		ORDER BY COUNT(id) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.MetricType, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r *repoPG) AllTypes(ctx context.Context) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT DISTINCT metric_type FROM health_metrics ORDER BY metric_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func collectMetrics(rows pgx.Rows) ([]*Metric, error) {
	var items []*Metric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
