package kernel

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// OrderNumberPrefix starts every order number.
	OrderNumberPrefix = "ORD"
	// InvoiceNumberPrefix starts every invoice number.
	InvoiceNumberPrefix = "INV"

	orderSuffixLength   = 8
	invoiceSuffixLength = 6
)

var documentNumberPattern = regexp.MustCompile(`^(ORD-\d{8}-[0-9A-F]{8}|INV-\d{8}-[0-9A-F]{6})$`)

// DocumentNumber is a human-readable business number such as ORD-20261015-1A2B3C4D.
type DocumentNumber struct {
	value string
}

// NewOrderNumber generates an order number for the given creation time.
// The suffix is the first 8 hex digits of a random UUID, uppercased.
func NewOrderNumber(at time.Time) DocumentNumber {
	return newDocumentNumber(OrderNumberPrefix, at, orderSuffixLength)
}

// NewInvoiceNumber generates an invoice number for the given issue time.
func NewInvoiceNumber(at time.Time) DocumentNumber {
	return newDocumentNumber(InvoiceNumberPrefix, at, invoiceSuffixLength)
}

// ParseDocumentNumber restores a number read from storage.
func ParseDocumentNumber(raw string) (DocumentNumber, error) {
	if !documentNumberPattern.MatchString(raw) {
		return DocumentNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"document number",
			fmt.Errorf("%q does not match %s", raw, documentNumberPattern),
		)
	}
	return DocumentNumber{value: raw}, nil
}

func newDocumentNumber(prefix string, at time.Time, suffixLength int) DocumentNumber {
	suffix := strings.ToUpper(uuid.NewString()[:suffixLength])
	return DocumentNumber{value: fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), suffix)}
}

func (n DocumentNumber) String() string {
	return n.value
}

// IsZero reports whether the number was never assigned.
func (n DocumentNumber) IsZero() bool {
	return n.value == ""
}
