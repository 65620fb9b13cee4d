package workflow_test

import (
	"errors"
	"testing"

	"crm-management-api/internal/model"
	"crm-management-api/internal/workflow"
)

func TestFullCycle(t *testing.T) {
	s := model.TaskMain

	s, err := workflow.Reassign(s)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if s != model.TaskReassigned {
		t.Fatalf("expected reassigned, got %s", s)
	}

	s, err = workflow.MoveToReuse(s)
	if err != nil {
		t.Fatalf("move to reuse: %v", err)
	}
	if s != model.TaskReuse {
		t.Fatalf("expected reuse, got %s", s)
	}

	s, err = workflow.Reactivate(s)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if s != model.TaskMain {
		t.Fatalf("cycle should end back at main, got %s", s)
	}
}

func TestRejectedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from model.TaskStatus
		fn   func(model.TaskStatus) (model.TaskStatus, error)
	}{
		{"reassign from reassigned", model.TaskReassigned, workflow.Reassign},
		{"reassign from reuse", model.TaskReuse, workflow.Reassign},
		{"reuse from main", model.TaskMain, workflow.MoveToReuse},
		{"reuse from reuse", model.TaskReuse, workflow.MoveToReuse},
		{"reactivate from main", model.TaskMain, workflow.Reactivate},
		{"reactivate from reassigned", model.TaskReassigned, workflow.Reactivate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.from)
			if !errors.Is(err, workflow.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if got != tt.from {
				t.Errorf("status must not move on rejection: %s -> %s", tt.from, got)
			}
		})
	}
}
