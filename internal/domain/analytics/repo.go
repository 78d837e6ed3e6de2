package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DayCount is one day's activity volume.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// Repository answers the cross-table questions the per-entity repositories
// cannot.
type Repository interface {
	// ActivePatientsCount counts distinct patients with a health metric dated
	// or a medical record uploaded within the trailing window.
	ActivePatientsCount(ctx context.Context, days int) (int, error)
	// ActivityTimeline returns per-day activity counts over the trailing
	// window, oldest day first. Days with no activity are absent.
	ActivityTimeline(ctx context.Context, days int) ([]DayCount, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) ActivePatientsCount(ctx context.Context, days int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT COUNT(*) FROM (
			SELECT patient_id FROM health_metrics
			WHERE date >= NOW() - INTERVAL '%d days'
			UNION
			SELECT patient_id FROM medical_records
			WHERE upload_date >= NOW() - INTERVAL '%d days'
		) AS active`, days, days)).Scan(&n)
	return n, err
}

func (r *repoPG) ActivityTimeline(ctx context.Context, days int) ([]DayCount, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT date_trunc('day', timestamp) AS day, COUNT(id)
		FROM activities
		WHERE timestamp >= NOW() - INTERVAL '%d days'
		GROUP BY day
		ORDER BY day`, days))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}
