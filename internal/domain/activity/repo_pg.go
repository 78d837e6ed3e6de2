package activity

import (
	"context"
	"time"

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

func (r *repoPG) Log(ctx context.Context, a *Activity) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO activities (patient_id, patient_name, activity_type, description, timestamp)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		a.PatientID, a.PatientName, a.ActivityType, a.Description, a.Timestamp).Scan(&a.ID)
}

func (r *repoPG) Recent(ctx context.Context, limit int) ([]*Activity, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, patient_name, activity_type, description, timestamp
		FROM activities ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.PatientID, &a.PatientName, &a.ActivityType, &a.Description, &a.Timestamp); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *repoPG) MostActivePatients(ctx context.Context, limit int) ([]PatientCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT patient_name, COUNT(id)
		FROM activities
		WHERE patient_name IS NOT NULL
		GROUP BY patient_name
		ORDER BY COUNT(id) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []PatientCount
	for rows.Next() {
		var pc PatientCount
		if err := rows.Scan(&pc.PatientName, &pc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, pc)
	}
	return counts, rows.Err()
}
