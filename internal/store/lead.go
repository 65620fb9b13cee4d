package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"crm-management-api/internal/model"
)

func (s *Postgres) CreateLead(ctx context.Context, l *model.Lead) error {
	l.ID = uuid.New().String()
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	if l.Status == "" {
		l.Status = model.LeadNew
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads (id, name, email, phone, status, value, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		l.ID, l.Name, l.Email, l.Phone, l.Status, l.Value, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

func (s *Postgres) ListLeads(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, status, value, created_at, updated_at
		 FROM leads ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Lead
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone,
			&l.Status, &l.Value, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Postgres) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	l := &model.Lead{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, status, value, created_at, updated_at
		 FROM leads WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Status, &l.Value, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Postgres) UpdateLead(ctx context.Context, id string, p model.LeadPatch) (*model.Lead, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var l model.Lead
	err = tx.QueryRow(ctx,
		`SELECT id, name, email, phone, status, value FROM leads WHERE id = $1 FOR UPDATE`, id,
	).Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Status, &l.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Apply(&l)

	_, err = tx.Exec(ctx,
		`UPDATE leads SET name=$1, email=$2, phone=$3, status=$4, value=$5, updated_at=NOW()
		 WHERE id=$6`,
		l.Name, l.Email, l.Phone, l.Status, l.Value, id,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetLead(ctx, id)
}
