// Package driverrepo persists drivers in the drivers table.
package driverrepo

import (
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
)

// DriverDTO is the row of the drivers table.
type DriverDTO struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	Name            string `gorm:"size:200;not null;index"`
	Phone           string `gorm:"size:50;not null"`
	Status          string `gorm:"size:20;not null;index"`
	CurrentLocation string `gorm:"type:text"`
	LastActive      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:              d.ID().Int64(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		Status:          d.Status().String(),
		CurrentLocation: d.CurrentLocation(),
		LastActive:      d.LastActive(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	status, err := driver.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(kernel.ID(dto.ID), dto.Name, dto.Phone, status, dto.CurrentLocation, dto.LastActive)
}
