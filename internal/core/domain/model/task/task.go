package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultDeadline is applied when a task is enqueued without a deadline.
const DefaultDeadline = 24 * time.Hour

var (
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")
	// ErrRoleDoesNotOwnType is returned when a task is routed to a role that cannot process it.
	ErrRoleDoesNotOwnType = errors.New("role does not own task type")
	// ErrTaskAlreadyCompleted is returned when acknowledging a completed task.
	ErrTaskAlreadyCompleted = errors.New("task already completed")
)

// Related holds the optional entity references of a task.
type Related struct {
	OrderID    *kernel.ID
	CustomerID *kernel.ID
	DriverID   *kernel.ID
}

// Spec is the input for enqueueing a task.
type Spec struct {
	Title    string
	Type     Type
	Role     Role
	Related  Related
	Priority Priority
	Deadline time.Time
}

// Task is the aggregate root of one queued unit of work.
type Task struct {
	id          kernel.ID
	title       string
	taskType    Type
	role        Role
	related     Related
	priority    Priority
	deadline    time.Time
	status      Status
	createdAt   time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewTask creates a Pending task. The role defaults to the owner of the type
// and must match it when given. A zero priority means Normal and a zero
// deadline means now + DefaultDeadline.
//
// Example:
//
//	t, err := task.NewTask(task.Spec{
//	    Title:    "Assign driver for ORD-20261015-1A2B3C4D",
//	    Type:     task.AssignDriver,
//	    Related:  task.Related{OrderID: &orderID},
//	    Priority: task.High,
//	}, time.Now())
func NewTask(spec Spec, now time.Time) (*Task, error) {
	if spec.Role == UnknownRole {
		spec.Role = spec.Type.Owner()
	}
	if spec.Priority == UnknownPriority {
		spec.Priority = Normal
	}
	if spec.Deadline.IsZero() {
		spec.Deadline = now.Add(DefaultDeadline)
	}

	t := &Task{
		status:    Pending,
		createdAt: now,
		deadline:  spec.Deadline,
		guard:     guard.NewConstructorGuard(),
	}
	if err := t.apply(spec); err != nil {
		return nil, err
	}
	return t, nil
}

// Snapshot is the full persisted state of a task.
type Snapshot struct {
	ID          kernel.ID
	Title       string
	Type        Type
	Role        Role
	Related     Related
	Priority    Priority
	Deadline    time.Time
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func RestoreTask(s Snapshot) (*Task, error) {
	t := &Task{
		deadline:    s.Deadline,
		createdAt:   s.CreatedAt,
		completedAt: s.CompletedAt,
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		t.MarkPersisted(s.ID),
		t.apply(Spec{Title: s.Title, Type: s.Type, Role: s.Role, Related: s.Related, Priority: s.Priority}),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	t.status = s.Status
	return t, nil
}

func (t *Task) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

func (t *Task) MarkPersisted(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) ID() kernel.ID           { return t.id }
func (t *Task) Title() string           { return t.title }
func (t *Task) Type() Type              { return t.taskType }
func (t *Task) Role() Role              { return t.role }
func (t *Task) Related() Related        { return t.related }
func (t *Task) Priority() Priority      { return t.priority }
func (t *Task) Deadline() time.Time     { return t.deadline }
func (t *Task) Status() Status          { return t.status }
func (t *Task) CreatedAt() time.Time    { return t.createdAt }
func (t *Task) CompletedAt() *time.Time { return t.completedAt }
func (t *Task) IsPending() bool         { return t.status == Pending }

// Complete acknowledges the task.
func (t *Task) Complete(at time.Time) error {
	if t.status == Completed {
		return ErrTaskAlreadyCompleted
	}
	t.status = Completed
	t.completedAt = &at
	return nil
}

func (t *Task) apply(spec Spec) error {
	spec.Title = strings.TrimSpace(spec.Title)

	var err error
	if spec.Title == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("title"))
	}
	err = errors.Join(err, spec.Type.Validate(), spec.Role.Validate(), spec.Priority.Validate())
	if spec.Type.Validate() == nil && spec.Role.Validate() == nil && spec.Type.Owner() != spec.Role {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%w: %s does not handle %s", ErrRoleDoesNotOwnType, spec.Role, spec.Type),
		))
	}
	for name, id := range map[string]*kernel.ID{
		"order id":    spec.Related.OrderID,
		"customer id": spec.Related.CustomerID,
		"driver id":   spec.Related.DriverID,
	} {
		if id == nil {
			continue
		}
		if e := id.Validate(); e != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(name, e))
		}
	}
	if err != nil {
		return err
	}

	t.title = spec.Title
	t.taskType = spec.Type
	t.role = spec.Role
	t.related = spec.Related
	t.priority = spec.Priority
	return nil
}
