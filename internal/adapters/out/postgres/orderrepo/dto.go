// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderDTO is the row of the orders table. Status is stored by name.
type OrderDTO struct {
	ID                int64     `gorm:"primaryKey;autoIncrement"`
	OrderNumber       string    `gorm:"size:32;not null;uniqueIndex"`
	CustomerID        int64     `gorm:"not null;index"`
	PickupAddress     string    `gorm:"type:text;not null"`
	DeliveryAddress   string    `gorm:"type:text;not null"`
	ParcelDescription string    `gorm:"type:text"`
	WeightKg          float64   `gorm:"type:numeric(10,2)"`
	BasePrice         float64   `gorm:"type:numeric(10,2);not null"`
	TotalPrice        float64   `gorm:"type:numeric(10,2);not null"`
	Status            string    `gorm:"size:20;not null;index"`
	Deadline          time.Time `gorm:"not null;index"`
	AssignedDriverID  *int64    `gorm:"index"`
	AssignedAt        *time.Time
	PickupTime        *time.Time
	DeliveryTime      *time.Time
	PhotoPath         string `gorm:"size:500"`
	SignaturePath     string `gorm:"size:500"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                o.ID().Int64(),
		OrderNumber:       o.Number().String(),
		CustomerID:        o.CustomerID().Int64(),
		PickupAddress:     o.Route().PickupAddress,
		DeliveryAddress:   o.Route().DeliveryAddress,
		ParcelDescription: o.Parcel().Description,
		WeightKg:          o.Parcel().WeightKg,
		BasePrice:         o.BasePrice(),
		TotalPrice:        o.TotalPrice(),
		Status:            o.Status().String(),
		Deadline:          o.Deadline(),
		AssignedDriverID:  kernel.RawOptionalID(o.DriverID()),
		AssignedAt:        o.AssignedAt(),
		PickupTime:        o.PickupTime(),
		DeliveryTime:      o.DeliveryTime(),
		PhotoPath:         o.ProofOfDelivery().PhotoPath,
		SignaturePath:     o.ProofOfDelivery().SignaturePath,
		CreatedAt:         o.CreatedAt(),
	}
}

// fields lists the mutable columns written on update.
func (dto OrderDTO) fields() map[string]any {
	return map[string]any{
		"status":             dto.Status,
		"assigned_driver_id": dto.AssignedDriverID,
		"assigned_at":        dto.AssignedAt,
		"pickup_time":        dto.PickupTime,
		"delivery_time":      dto.DeliveryTime,
		"photo_path":         dto.PhotoPath,
		"signature_path":     dto.SignaturePath,
		"total_price":        dto.TotalPrice,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:         kernel.ID(dto.ID),
		Number:     dto.OrderNumber,
		CustomerID: kernel.ID(dto.CustomerID),
		Route: order.Route{
			PickupAddress:   dto.PickupAddress,
			DeliveryAddress: dto.DeliveryAddress,
		},
		Parcel: order.Parcel{
			Description: dto.ParcelDescription,
			WeightKg:    dto.WeightKg,
		},
		BasePrice:    dto.BasePrice,
		TotalPrice:   dto.TotalPrice,
		Status:       status,
		Deadline:     dto.Deadline,
		DriverID:     kernel.OptionalID(dto.AssignedDriverID),
		AssignedAt:   dto.AssignedAt,
		PickupTime:   dto.PickupTime,
		DeliveryTime: dto.DeliveryTime,
		Proof: order.ProofOfDelivery{
			PhotoPath:     dto.PhotoPath,
			SignaturePath: dto.SignaturePath,
		},
		CreatedAt: dto.CreatedAt,
	})
}
