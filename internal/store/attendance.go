package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"crm-management-api/internal/model"
)

// AddAttendance appends one record for the user. The (user_id, date) unique
// index makes the per-date append-only rule hold under concurrent writers.
func (s *Postgres) AddAttendance(ctx context.Context, userID string, rec model.AttendanceRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO attendance (user_id, date, status) VALUES ($1,$2,$3)`,
		userID, rec.Date, rec.Status,
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation: already marked for that date
			return ErrDuplicate
		case "23503": // foreign_key_violation: no such user
			return ErrNotFound
		}
	}
	return err
}
