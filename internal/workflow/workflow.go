// Package workflow guards the task lifecycle. The guided actions walk a
// strict cycle:
//
//	main -> reassigned -> reuse -> main
//
// Anything else is rejected. A direct status edit through the task update
// endpoint stays available as the correction escape hatch; it bypasses this
// package on purpose.
package workflow

import (
	"errors"

	"crm-management-api/internal/model"
)

var ErrInvalidTransition = errors.New("transition not allowed from current status")

// Reassign moves a main task onto the reassigned board.
func Reassign(s model.TaskStatus) (model.TaskStatus, error) {
	return step(s, model.TaskMain, model.TaskReassigned)
}

// MoveToReuse parks a reassigned task for reuse.
func MoveToReuse(s model.TaskStatus) (model.TaskStatus, error) {
	return step(s, model.TaskReassigned, model.TaskReuse)
}

// Reactivate puts a reuse task back on the main board.
func Reactivate(s model.TaskStatus) (model.TaskStatus, error) {
	return step(s, model.TaskReuse, model.TaskMain)
}

func step(cur, from, to model.TaskStatus) (model.TaskStatus, error) {
	if cur != from {
		return cur, ErrInvalidTransition
	}
	return to, nil
}
