package invoice

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the billing state of an invoice.
type Status int

const (
	UnknownStatus Status = iota
	Draft
	Sent
	Viewed
	Paid
	Overdue
)

var statusNames = map[Status]string{
	Draft:   "draft",
	Sent:    "sent",
	Viewed:  "viewed",
	Paid:    "paid",
	Overdue: "overdue",
}

// UnpaidStatuses are the statuses counted as outstanding.
var UnpaidStatuses = []Status{Sent, Viewed, Overdue}

func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("invoice status", fmt.Errorf("%q is not a valid invoice status", raw))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("invoice status", fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsUnpaid reports whether the invoice is sent but not yet paid.
func (s Status) IsUnpaid() bool {
	return s == Sent || s == Viewed || s == Overdue
}
