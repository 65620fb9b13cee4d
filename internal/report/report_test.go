package report_test

import (
	"testing"

	"crm-management-api/internal/model"
	"crm-management-api/internal/report"
)

func TestPartitionByUserType(t *testing.T) {
	users := []model.User{
		{ID: "a", UserType: model.UserTypeEmployee},
		{ID: "b", UserType: model.UserTypeDriver},
		{ID: "c", UserType: model.UserTypeEmployee},
	}

	if n := len(report.Employees(users)); n != 2 {
		t.Errorf("expected 2 employees, got %d", n)
	}
	if n := len(report.Drivers(users)); n != 1 {
		t.Errorf("expected 1 driver, got %d", n)
	}
}

func TestTasksByStatusCountsSum(t *testing.T) {
	tasks := []model.Task{
		{Status: model.TaskMain},
		{Status: model.TaskMain},
		{Status: model.TaskReassigned},
		{Status: model.TaskReuse},
	}

	counts := report.TasksByStatus(tasks)
	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != len(tasks) {
		t.Errorf("counts sum %d, want %d", sum, len(tasks))
	}
	if counts[model.TaskMain] != 2 {
		t.Errorf("main count: got %d", counts[model.TaskMain])
	}
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name  string
		leads []model.Lead
		want  float64
	}{
		{"empty", nil, 0},
		{"half converted", []model.Lead{
			{Status: model.LeadConverted},
			{Status: model.LeadLost},
		}, 0.5},
		{"none converted", []model.Lead{
			{Status: model.LeadNew},
			{Status: model.LeadContacted},
		}, 0},
		{"all converted", []model.Lead{
			{Status: model.LeadConverted},
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := report.ConversionRate(tt.leads); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLeadValues(t *testing.T) {
	leads := []model.Lead{
		{Status: model.LeadConverted, Value: 1000},
		{Status: model.LeadNew, Value: 250},
		{Status: model.LeadLost, Value: 75},
	}

	if got := report.TotalLeadValue(leads); got != 1325 {
		t.Errorf("total: got %v", got)
	}
	if got := report.ConvertedLeadValue(leads); got != 1000 {
		t.Errorf("converted: got %v", got)
	}
}

func TestTasksAssignedTo(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", AssignedTo: []string{"u1", "u2"}},
		{ID: "t2", AssignedTo: []string{"u2"}},
		{ID: "t3", AssignedTo: nil},
	}

	got := report.TasksAssignedTo("u2", tasks)
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks for u2, got %d", len(got))
	}
	if got := report.TasksAssignedTo("nobody", tasks); len(got) != 0 {
		t.Errorf("expected no tasks for unknown user, got %d", len(got))
	}
}

func TestAttendancePresentCount(t *testing.T) {
	u := model.User{Attendance: []model.AttendanceRecord{
		{Date: "2026-01-05", Status: model.AttendancePresent},
		{Date: "2026-01-06", Status: model.AttendanceAbsent},
		{Date: "2026-01-07", Status: model.AttendancePresent},
		{Date: "2026-01-08", Status: model.AttendanceLeave},
	}}

	if got := report.AttendancePresentCount(u); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestSummarize(t *testing.T) {
	users := []model.User{
		{UserType: model.UserTypeEmployee},
		{UserType: model.UserTypeDriver},
	}
	tasks := []model.Task{
		{Status: model.TaskMain},
		{Status: model.TaskReuse},
	}
	leads := []model.Lead{
		{Status: model.LeadNew, Value: 100},
		{Status: model.LeadConverted, Value: 400},
		{Status: model.LeadLost, Value: 50},
	}

	s := report.Summarize(users, tasks, leads)
	if s.TotalEmployees != 1 || s.TotalDrivers != 1 {
		t.Errorf("employee/driver split: %d/%d", s.TotalEmployees, s.TotalDrivers)
	}
	if s.PendingTasks != 1 {
		t.Errorf("pending tasks: got %d", s.PendingTasks)
	}
	if s.ActiveLeads != 1 {
		t.Errorf("active leads: got %d", s.ActiveLeads)
	}
	if s.TotalLeadValue != 550 || s.ConvertedLeadValue != 400 {
		t.Errorf("lead values: %v / %v", s.TotalLeadValue, s.ConvertedLeadValue)
	}
}
