// Package invoicerepo persists invoices in the invoices table.
package invoicerepo

import (
	"time"

	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"
)

// InvoiceDTO is the row of the invoices table.
type InvoiceDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	InvoiceNumber string    `gorm:"size:32;not null;uniqueIndex"`
	CustomerID    int64     `gorm:"not null;index"`
	OrderID       int64     `gorm:"not null;index"`
	Subtotal      float64   `gorm:"type:double precision;not null"`
	Tax           float64   `gorm:"type:double precision;not null"`
	Total         float64   `gorm:"type:numeric(10,2);not null"`
	IssueDate     time.Time `gorm:"not null"`
	DueDate       time.Time `gorm:"not null;index"`
	Status        string    `gorm:"size:20;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(i *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:            i.ID().Int64(),
		InvoiceNumber: i.Number().String(),
		CustomerID:    i.CustomerID().Int64(),
		OrderID:       i.OrderID().Int64(),
		Subtotal:      i.Subtotal(),
		Tax:           i.Tax(),
		Total:         i.Total(),
		IssueDate:     i.IssueDate(),
		DueDate:       i.DueDate(),
		Status:        i.Status().String(),
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	status, err := invoice.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return invoice.RestoreInvoice(invoice.Snapshot{
		ID:         kernel.ID(dto.ID),
		Number:     dto.InvoiceNumber,
		CustomerID: kernel.ID(dto.CustomerID),
		OrderID:    kernel.ID(dto.OrderID),
		Amounts: invoice.Amounts{
			Subtotal: dto.Subtotal,
			Tax:      dto.Tax,
			Total:    dto.Total,
		},
		IssueDate: dto.IssueDate,
		DueDate:   dto.DueDate,
		Status:    status,
	})
}
