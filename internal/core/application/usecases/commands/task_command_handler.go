package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/task"
)

// CreateTaskCommandHandler enqueues a task in its own transaction.
type CreateTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

func NewCreateTaskCommandHandler(uowFactory TaskUoWFactory) CreateTaskCommandHandler {
	return CreateTaskCommandHandler{uowFactory: uowFactory}
}

func (h CreateTaskCommandHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*task.Task, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := task.NewTask(cmd.Spec(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TaskRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteTaskCommandHandler acknowledges a task. Acknowledging twice yields
// task.ErrTaskAlreadyCompleted.
type CompleteTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

func NewCompleteTaskCommandHandler(uowFactory TaskUoWFactory) CompleteTaskCommandHandler {
	return CompleteTaskCommandHandler{uowFactory: uowFactory}
}

func (h CompleteTaskCommandHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*task.Task, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TaskRepository()
	t, err := repo.GetForUpdate(ctx, cmd.TaskID())
	if err != nil {
		return nil, err
	}
	if err = t.Complete(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}
