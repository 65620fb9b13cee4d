package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"crm-management-api/internal/model"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an attendance record already exists
	// for the user on the given date.
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnknownAssignee is returned when a task references a user id
	// that does not exist.
	ErrUnknownAssignee = errors.New("assignee does not exist")
)

// Store is the persistence contract shared by the postgres backend and the
// in-memory backend. All mutations are all-or-nothing: on error nothing is
// committed.
type Store interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, id string, p model.UserPatch) (*model.User, error)
	// DeleteUser also detaches the user from every task's assignment set.
	DeleteUser(ctx context.Context, id string) error
	AddAttendance(ctx context.Context, userID string, rec model.AttendanceRecord) error

	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	CreateTask(ctx context.Context, t *model.Task) error
	UpdateTask(ctx context.Context, id string, p model.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListLeads(ctx context.Context) ([]model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	CreateLead(ctx context.Context, l *model.Lead) error
	UpdateLead(ctx context.Context, id string, p model.LeadPatch) (*model.Lead, error)
}

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}
