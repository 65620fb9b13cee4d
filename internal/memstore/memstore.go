// Package memstore is the local, process-memory implementation of the record
// store. It backs the server when no DATABASE_URL is configured and stands in
// for postgres in tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"crm-management-api/internal/model"
	"crm-management-api/internal/store"
)

type Store struct {
	mu    sync.Mutex
	users []model.User
	tasks []model.Task
	leads []model.Lead
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = uuid.New().String()
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	u.Attendance = []model.AttendanceRecord{}
	u.AssignedTaskIDs = []string{}
	s.users = append(s.users, *u)
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, len(s.users))
	for i := range s.users {
		out[i] = s.copyUserLocked(&s.users[i])
	}
	return out, nil
}

func (s *Store) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserLocked(id)
	if u == nil {
		return nil, store.ErrNotFound
	}
	cp := s.copyUserLocked(u)
	return &cp, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, p model.UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserLocked(id)
	if u == nil {
		return nil, store.ErrNotFound
	}
	p.Apply(u)
	u.UpdatedAt = time.Now()
	cp := s.copyUserLocked(u)
	return &cp, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	for j := range s.users {
		if s.users[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return store.ErrNotFound
	}
	s.users = append(s.users[:i], s.users[i+1:]...)

	// detach from every task so no assignment dangles
	for j := range s.tasks {
		t := &s.tasks[j]
		kept := t.AssignedTo[:0]
		for _, uid := range t.AssignedTo {
			if uid != id {
				kept = append(kept, uid)
			}
		}
		t.AssignedTo = kept
	}
	return nil
}

func (s *Store) AddAttendance(_ context.Context, userID string, rec model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserLocked(userID)
	if u == nil {
		return store.ErrNotFound
	}
	for _, r := range u.Attendance {
		if r.Date == rec.Date {
			return store.ErrDuplicate
		}
	}
	u.Attendance = append(u.Attendance, rec)
	u.UpdatedAt = time.Now()
	return nil
}

func (s *Store) CreateTask(_ context.Context, t *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.assigneesExistLocked(t.AssignedTo); err != nil {
		return err
	}
	t.ID = uuid.New().String()
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	if t.Status == "" {
		t.Status = model.TaskMain
	}
	t.AssignedTo = dedup(t.AssignedTo)
	s.tasks = append(s.tasks, *t)
	return nil
}

func (s *Store) ListTasks(_ context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = copyTask(&s.tasks[i])
	}
	return out, nil
}

func (s *Store) GetTask(_ context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTaskLocked(id)
	if t == nil {
		return nil, store.ErrNotFound
	}
	cp := copyTask(t)
	return &cp, nil
}

func (s *Store) UpdateTask(_ context.Context, id string, p model.TaskPatch) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTaskLocked(id)
	if t == nil {
		return nil, store.ErrNotFound
	}
	if p.AssignedTo != nil {
		if err := s.assigneesExistLocked(*p.AssignedTo); err != nil {
			return nil, err
		}
		d := dedup(*p.AssignedTo)
		p.AssignedTo = &d
	}
	p.Apply(t)
	t.UpdatedAt = time.Now()
	cp := copyTask(t)
	return &cp, nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) CreateLead(_ context.Context, l *model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = uuid.New().String()
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	if l.Status == "" {
		l.Status = model.LeadNew
	}
	s.leads = append(s.leads, *l)
	return nil
}

func (s *Store) ListLeads(_ context.Context) ([]model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Lead, len(s.leads))
	copy(out, s.leads)
	return out, nil
}

func (s *Store) GetLead(_ context.Context, id string) (*model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID == id {
			cp := s.leads[i]
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateLead(_ context.Context, id string, p model.LeadPatch) (*model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID == id {
			p.Apply(&s.leads[i])
			s.leads[i].UpdatedAt = time.Now()
			cp := s.leads[i]
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) findUserLocked(id string) *model.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) findTaskLocked(id string) *model.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

func (s *Store) assigneesExistLocked(ids []string) error {
	for _, uid := range ids {
		if s.findUserLocked(uid) == nil {
			return store.ErrUnknownAssignee
		}
	}
	return nil
}

// copyUserLocked fills AssignedTaskIDs from the task side, which is the
// source of truth for assignments.
func (s *Store) copyUserLocked(u *model.User) model.User {
	cp := *u
	cp.Attendance = append([]model.AttendanceRecord(nil), u.Attendance...)
	cp.AssignedTaskIDs = []string{}
	for i := range s.tasks {
		for _, uid := range s.tasks[i].AssignedTo {
			if uid == u.ID {
				cp.AssignedTaskIDs = append(cp.AssignedTaskIDs, s.tasks[i].ID)
				break
			}
		}
	}
	return cp
}

func copyTask(t *model.Task) model.Task {
	cp := *t
	cp.AssignedTo = append([]string{}, t.AssignedTo...)
	return cp
}

func dedup(in []string) []string {
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
