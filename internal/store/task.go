package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"crm-management-api/internal/model"
)

// assigneesExist verifies every id resolves to a users row before any
// assignment is written.
func assigneesExist(ctx context.Context, tx pgx.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE id = ANY($1)`, ids,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n != len(uniqueStrings(ids)) {
		return ErrUnknownAssignee
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := []string{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (s *Postgres) CreateTask(ctx context.Context, t *model.Task) error {
	t.ID = uuid.New().String()
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	if t.Status == "" {
		t.Status = model.TaskMain
	}
	t.AssignedTo = uniqueStrings(t.AssignedTo)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := assigneesExist(ctx, tx, t.AssignedTo); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO tasks (id, title, description, status, due_date, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		t.ID, t.Title, t.Description, t.Status, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, uid := range t.AssignedTo {
		_, err = tx.Exec(ctx,
			`INSERT INTO task_assignments (task_id, user_id) VALUES ($1,$2)`,
			t.ID, uid,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Postgres) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, status, to_char(due_date, 'YYYY-MM-DD'), created_at, updated_at
		 FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	idx := map[string]int{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.AssignedTo = []string{}
		idx[t.ID] = len(out)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	arows, err := s.pool.Query(ctx, `SELECT task_id, user_id FROM task_assignments`)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var tid, uid string
		if err := arows.Scan(&tid, &uid); err != nil {
			return nil, err
		}
		if i, ok := idx[tid]; ok {
			out[i].AssignedTo = append(out[i].AssignedTo, uid)
		}
	}
	return out, arows.Err()
}

func (s *Postgres) GetTask(ctx context.Context, id string) (*model.Task, error) {
	t := &model.Task{AssignedTo: []string{}}
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, status, to_char(due_date, 'YYYY-MM-DD'), created_at, updated_at
		 FROM tasks WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT user_id FROM task_assignments WHERE task_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		t.AssignedTo = append(t.AssignedTo, uid)
	}
	return t, rows.Err()
}

func (s *Postgres) UpdateTask(ctx context.Context, id string, p model.TaskPatch) (*model.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var t model.Task
	err = tx.QueryRow(ctx,
		`SELECT id, title, description, status, to_char(due_date, 'YYYY-MM-DD')
		 FROM tasks WHERE id = $1 FOR UPDATE`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Apply(&t)

	if p.AssignedTo != nil {
		t.AssignedTo = uniqueStrings(t.AssignedTo)
		if err := assigneesExist(ctx, tx, t.AssignedTo); err != nil {
			return nil, err
		}
		// replace assignments
		if _, err := tx.Exec(ctx, `DELETE FROM task_assignments WHERE task_id = $1`, id); err != nil {
			return nil, err
		}
		for _, uid := range t.AssignedTo {
			_, err = tx.Exec(ctx,
				`INSERT INTO task_assignments (task_id, user_id) VALUES ($1,$2)`, id, uid)
			if err != nil {
				return nil, err
			}
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE tasks SET title=$1, description=$2, status=$3, due_date=$4, updated_at=NOW()
		 WHERE id=$5`,
		t.Title, t.Description, t.Status, t.DueDate, id,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetTask(ctx, id)
}

func (s *Postgres) DeleteTask(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM task_assignments WHERE task_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
