package queries

import (
	"context"

	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDriverOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverOrdersQueryHandler(db *gorm.DB) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown driver and an empty
// slice for a driver without orders.
func (h GetDriverOrdersQueryHandler) Handle(ctx context.Context, query GetDriverOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM drivers WHERE id = ?)`, query.DriverID().Int64()).
		Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("driver", query.DriverID())
	}

	return listOrders(db, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.assigned_driver_id = ?
		ORDER BY o.deadline ASC, o.id ASC
	`, query.DriverID().Int64())
}
