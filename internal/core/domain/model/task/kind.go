package task

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Role is the agent role that processes a task.
type Role int

const (
	UnknownRole Role = iota
	Secretary
	Accounting
	Scheduler
	Comms
	Dispatcher
)

var roleNames = map[Role]string{
	Secretary:  "secretary",
	Accounting: "accounting",
	Scheduler:  "scheduler",
	Comms:      "comms",
	Dispatcher: "dispatcher",
}

// Roles lists every role in a stable order.
func Roles() []Role {
	return []Role{Secretary, Accounting, Scheduler, Comms, Dispatcher}
}

func ParseRole(raw string) (Role, error) {
	for r, name := range roleNames {
		if name == raw {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", raw))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Type is the kind of work a task asks for.
type Type int

const (
	UnknownType Type = iota
	SendEmail
	SendThankYouEmail
	PrepareContract
	CreateInvoice
	SendPaymentReminder
	CalculateDriverWage
	AssignDriver
	SendDailyReminder
	CheckOverdue
	NotifyCustomer
	NotifyDriver
	SendStatusUpdate
	Escalate
)

var typeNames = map[Type]string{
	SendEmail:           "send_email",
	SendThankYouEmail:   "send_thankyou_email",
	PrepareContract:     "prepare_contract",
	CreateInvoice:       "create_invoice",
	SendPaymentReminder: "send_payment_reminder",
	CalculateDriverWage: "calculate_driver_wage",
	AssignDriver:        "assign_driver",
	SendDailyReminder:   "send_daily_reminder",
	CheckOverdue:        "check_overdue",
	NotifyCustomer:      "notify_customer",
	NotifyDriver:        "notify_driver",
	SendStatusUpdate:    "send_status_update",
	Escalate:            "escalate",
}

var typeOwners = map[Type]Role{
	SendEmail:           Secretary,
	SendThankYouEmail:   Secretary,
	PrepareContract:     Secretary,
	CreateInvoice:       Accounting,
	SendPaymentReminder: Accounting,
	CalculateDriverWage: Accounting,
	AssignDriver:        Scheduler,
	SendDailyReminder:   Scheduler,
	CheckOverdue:        Scheduler,
	NotifyCustomer:      Comms,
	NotifyDriver:        Comms,
	SendStatusUpdate:    Comms,
	Escalate:            Dispatcher,
}

func ParseType(raw string) (Type, error) {
	for t, name := range typeNames {
		if name == raw {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("task type", fmt.Errorf("%q is not a valid task type", raw))
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("task type", fmt.Errorf("%d is not a valid task type", t))
	}
	return nil
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Owner returns the role responsible for the type.
func (t Type) Owner() Role {
	return typeOwners[t]
}

// Priority orders urgency of a task.
type Priority int

const (
	UnknownPriority Priority = iota
	Low
	Normal
	High
	Critical
)

var priorityNames = map[Priority]string{
	Low:      "low",
	Normal:   "normal",
	High:     "high",
	Critical: "critical",
}

func ParsePriority(raw string) (Priority, error) {
	for p, name := range priorityNames {
		if name == raw {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", raw))
}

func (p Priority) Validate() error {
	if _, ok := priorityNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// Status is the queue state of a task.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Completed
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Completed: "completed",
}

func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%q is not a valid task status", raw))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%d is not a valid task status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
