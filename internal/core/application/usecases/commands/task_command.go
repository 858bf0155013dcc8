package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateTaskCommandIsNotConstructed = errors.New(
		"CreateTaskCommand must be created via NewCreateTaskCommand constructor",
	)
	ErrCompleteTaskCommandIsNotConstructed = errors.New(
		"CompleteTaskCommand must be created via NewCompleteTaskCommand constructor",
	)
)

// CreateTaskCommand enqueues a task. Role, priority and deadline defaults are
// those of task.NewTask.
type CreateTaskCommand struct {
	spec task.Spec

	guard guard.ConstructorGuard
}

func NewCreateTaskCommand(spec task.Spec) (CreateTaskCommand, error) {
	spec.Title = strings.TrimSpace(spec.Title)

	var err error
	if spec.Title == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("title"))
	}
	if typeErr := spec.Type.Validate(); typeErr != nil {
		err = errors.Join(err, typeErr)
	}
	if err != nil {
		return CreateTaskCommand{}, err
	}
	return CreateTaskCommand{spec: spec, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateTaskCommandIsNotConstructed)
}

func (c CreateTaskCommand) Spec() task.Spec { return c.spec }

// CompleteTaskCommand acknowledges a pending task.
type CompleteTaskCommand struct {
	taskID kernel.ID

	guard guard.ConstructorGuard
}

func NewCompleteTaskCommand(taskID kernel.ID) (CompleteTaskCommand, error) {
	if err := taskID.Validate(); err != nil {
		return CompleteTaskCommand{}, err
	}
	return CompleteTaskCommand{taskID: taskID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
}

func (c CompleteTaskCommand) TaskID() kernel.ID { return c.taskID }
