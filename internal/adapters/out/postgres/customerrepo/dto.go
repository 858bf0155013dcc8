// Package customerrepo persists customers in the customers table.
package customerrepo

import (
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
)

// CustomerDTO is the row of the customers table.
type CustomerDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:200;not null"`
	Phone       string `gorm:"size:50;not null;index"`
	Email       string `gorm:"size:200;index"`
	Address     string `gorm:"type:text"`
	City        string `gorm:"size:100"`
	CompanyName string `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          c.ID().Int64(),
		Name:        c.Contact().Name,
		Phone:       c.Contact().Phone,
		Email:       c.Contact().Email,
		Address:     c.Address().Street,
		City:        c.Address().City,
		CompanyName: c.CompanyName(),
		CreatedAt:   c.CreatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	return customer.RestoreCustomer(
		kernel.ID(dto.ID),
		customer.Contact{Name: dto.Name, Phone: dto.Phone, Email: dto.Email},
		customer.Address{Street: dto.Address, City: dto.City},
		dto.CompanyName,
		dto.CreatedAt,
	)
}
