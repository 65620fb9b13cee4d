package memstore_test

import (
	"context"
	"errors"
	"testing"

	"crm-management-api/internal/memstore"
	"crm-management-api/internal/model"
	"crm-management-api/internal/store"
)

func newUser(name string, t model.UserType) *model.User {
	return &model.User{
		Name:     name,
		Age:      30,
		Phone1:   "555-0100",
		Location: "HQ",
		UserType: t,
	}
}

// ----- users -----

func TestCreateUserRoundTrip(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	u := newUser("Alice", model.UserTypeEmployee)
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("empty id")
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("zero createdAt")
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" || got.Age != 30 || got.UserType != model.UserTypeEmployee {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Attendance) != 0 {
		t.Errorf("attendance should start empty, got %d", len(got.Attendance))
	}
	if len(got.AssignedTaskIDs) != 0 {
		t.Errorf("assignments should start empty, got %d", len(got.AssignedTaskIDs))
	}
}

func TestUpdateUserPatch(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	u := newUser("Bob", model.UserTypeDriver)
	s.CreateUser(ctx, u)

	name := "Robert"
	got, err := s.UpdateUser(ctx, u.ID, model.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Robert" {
		t.Errorf("name not patched: %s", got.Name)
	}
	// untouched fields survive
	if got.Age != 30 || got.UserType != model.UserTypeDriver {
		t.Errorf("patch clobbered other fields: %+v", got)
	}
}

func TestUserNotFound(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	if _, err := s.GetUser(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateUser(ctx, "missing", model.UserPatch{}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteUser(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUserDetachesAssignments(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	u1 := newUser("Alice", model.UserTypeEmployee)
	u2 := newUser("Bob", model.UserTypeEmployee)
	s.CreateUser(ctx, u1)
	s.CreateUser(ctx, u2)

	task := &model.Task{Title: "Deliver", DueDate: "2026-10-01", AssignedTo: []string{u1.ID, u2.ID}}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.DeleteUser(ctx, u1.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	got, err := s.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	for _, uid := range got.AssignedTo {
		if uid == u1.ID {
			t.Error("deleted user still assigned to task")
		}
	}
	if len(got.AssignedTo) != 1 || got.AssignedTo[0] != u2.ID {
		t.Errorf("remaining assignee wrong: %v", got.AssignedTo)
	}
}

// ----- attendance -----

func TestAddAttendance(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	u := newUser("Alice", model.UserTypeEmployee)
	s.CreateUser(ctx, u)

	rec := model.AttendanceRecord{Date: "2026-09-01", Status: model.AttendancePresent}
	if err := s.AddAttendance(ctx, u.ID, rec); err != nil {
		t.Fatalf("add: %v", err)
	}

	// same date again is rejected
	rec.Status = model.AttendanceAbsent
	if err := s.AddAttendance(ctx, u.ID, rec); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	// other dates keep appending
	if err := s.AddAttendance(ctx, u.ID, model.AttendanceRecord{Date: "2026-09-02", Status: model.AttendanceLeave}); err != nil {
		t.Fatalf("second date: %v", err)
	}

	got, _ := s.GetUser(ctx, u.ID)
	if len(got.Attendance) != 2 {
		t.Errorf("expected 2 records, got %d", len(got.Attendance))
	}

	if err := s.AddAttendance(ctx, "missing", rec); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown user: expected ErrNotFound, got %v", err)
	}
}

// ----- tasks -----

func TestCreateTaskDefaults(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	task := &model.Task{Title: "Call back", DueDate: "2026-10-01"}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != model.TaskMain {
		t.Errorf("default status: got %s", task.Status)
	}
	if task.CreatedAt.IsZero() {
		t.Error("zero createdAt")
	}
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	task := &model.Task{Title: "Ghost", DueDate: "2026-10-01", AssignedTo: []string{"nobody"}}
	if err := s.CreateTask(ctx, task); !errors.Is(err, store.ErrUnknownAssignee) {
		t.Fatalf("expected ErrUnknownAssignee, got %v", err)
	}
	// nothing committed
	tasks, _ := s.ListTasks(ctx)
	if len(tasks) != 0 {
		t.Errorf("store mutated on failed create: %d tasks", len(tasks))
	}
}

func TestUpdateTaskCreatedAtImmutable(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	task := &model.Task{Title: "Fixed", DueDate: "2026-10-01"}
	s.CreateTask(ctx, task)
	created := task.CreatedAt

	title := "Renamed"
	got, err := s.UpdateTask(ctx, task.ID, model.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Error("createdAt changed on update")
	}
}

func TestAssignedTaskIDsDerived(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	u := newUser("Alice", model.UserTypeEmployee)
	s.CreateUser(ctx, u)
	task := &model.Task{Title: "Route", DueDate: "2026-10-01", AssignedTo: []string{u.ID}}
	s.CreateTask(ctx, task)

	got, _ := s.GetUser(ctx, u.ID)
	if len(got.AssignedTaskIDs) != 1 || got.AssignedTaskIDs[0] != task.ID {
		t.Errorf("assigned task ids: %v", got.AssignedTaskIDs)
	}

	s.DeleteTask(ctx, task.ID)
	got, _ = s.GetUser(ctx, u.ID)
	if len(got.AssignedTaskIDs) != 0 {
		t.Errorf("task delete should clear user's list: %v", got.AssignedTaskIDs)
	}
}

// ----- leads -----

func TestLeadLifecycle(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	l := &model.Lead{Name: "Acme", Email: "a@b.com", Phone: "555", Value: 1000}
	if err := s.CreateLead(ctx, l); err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.Status != model.LeadNew {
		t.Errorf("default status: got %s", l.Status)
	}

	st := model.LeadConverted
	got, err := s.UpdateLead(ctx, l.ID, model.LeadPatch{Status: &st})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != model.LeadConverted {
		t.Errorf("status: got %s", got.Status)
	}
	if got.Value != 1000 {
		t.Errorf("value clobbered: %v", got.Value)
	}

	if _, err := s.UpdateLead(ctx, "missing", model.LeadPatch{}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrderIsStable(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, n := range names {
		s.CreateLead(ctx, &model.Lead{Name: n})
	}

	leads, _ := s.ListLeads(ctx)
	if len(leads) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(leads))
	}
	for i, n := range names {
		if leads[i].Name != n {
			t.Errorf("position %d: got %s, want %s", i, leads[i].Name, n)
		}
	}
}
