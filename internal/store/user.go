package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"crm-management-api/internal/model"
)

func (s *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	u.ID = uuid.New().String()
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	u.Attendance = []model.AttendanceRecord{}
	u.AssignedTaskIDs = []string{}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, age, phone1, phone2, location, user_type, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		u.ID, u.Name, u.Age, u.Phone1, u.Phone2, u.Location, u.UserType, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (s *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, age, phone1, phone2, location, user_type, created_at, updated_at
		 FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	idx := map[string]int{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.Phone1, &u.Phone2,
			&u.Location, &u.UserType, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Attendance = []model.AttendanceRecord{}
		u.AssignedTaskIDs = []string{}
		idx[u.ID] = len(out)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// attendance, bucketed by owner
	arows, err := s.pool.Query(ctx,
		`SELECT user_id, to_char(date, 'YYYY-MM-DD'), status FROM attendance ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var uid string
		var rec model.AttendanceRecord
		if err := arows.Scan(&uid, &rec.Date, &rec.Status); err != nil {
			return nil, err
		}
		if i, ok := idx[uid]; ok {
			out[i].Attendance = append(out[i].Attendance, rec)
		}
	}
	if err := arows.Err(); err != nil {
		return nil, err
	}

	// task assignments, bucketed by user
	trows, err := s.pool.Query(ctx,
		`SELECT user_id, task_id FROM task_assignments`)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var uid, tid string
		if err := trows.Scan(&uid, &tid); err != nil {
			return nil, err
		}
		if i, ok := idx[uid]; ok {
			out[i].AssignedTaskIDs = append(out[i].AssignedTaskIDs, tid)
		}
	}
	return out, trows.Err()
}

func (s *Postgres) GetUser(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{Attendance: []model.AttendanceRecord{}, AssignedTaskIDs: []string{}}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, age, phone1, phone2, location, user_type, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Age, &u.Phone1, &u.Phone2,
		&u.Location, &u.UserType, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	arows, err := s.pool.Query(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), status FROM attendance WHERE user_id = $1 ORDER BY date`, id)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var rec model.AttendanceRecord
		if err := arows.Scan(&rec.Date, &rec.Status); err != nil {
			return nil, err
		}
		u.Attendance = append(u.Attendance, rec)
	}
	if err := arows.Err(); err != nil {
		return nil, err
	}

	trows, err := s.pool.Query(ctx,
		`SELECT task_id FROM task_assignments WHERE user_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var tid string
		if err := trows.Scan(&tid); err != nil {
			return nil, err
		}
		u.AssignedTaskIDs = append(u.AssignedTaskIDs, tid)
	}
	return u, trows.Err()
}

func (s *Postgres) UpdateUser(ctx context.Context, id string, p model.UserPatch) (*model.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var u model.User
	err = tx.QueryRow(ctx,
		`SELECT id, name, age, phone1, phone2, location, user_type
		 FROM users WHERE id = $1 FOR UPDATE`, id,
	).Scan(&u.ID, &u.Name, &u.Age, &u.Phone1, &u.Phone2, &u.Location, &u.UserType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Apply(&u)

	_, err = tx.Exec(ctx,
		`UPDATE users SET name=$1, age=$2, phone1=$3, phone2=$4, location=$5, user_type=$6, updated_at=NOW()
		 WHERE id=$7`,
		u.Name, u.Age, u.Phone1, u.Phone2, u.Location, u.UserType, id,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user, their attendance, and every task assignment
// pointing at them, so no task is left with a dangling assignee id.
func (s *Postgres) DeleteUser(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM task_assignments WHERE user_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM attendance WHERE user_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
