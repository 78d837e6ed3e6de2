package activity

import "context"

type Repository interface {
	// Log appends one activity row. It joins the caller's transaction when
	// one is carried in ctx so that an insert and its audit row commit or
	// roll back together.
	Log(ctx context.Context, a *Activity) error
	Recent(ctx context.Context, limit int) ([]*Activity, error)
	MostActivePatients(ctx context.Context, limit int) ([]PatientCount, error)
}
