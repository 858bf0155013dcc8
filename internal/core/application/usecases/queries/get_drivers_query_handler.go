package queries

import (
	"context"

	"logistics/internal/core/domain/model/driver"

	"gorm.io/gorm"
)

type GetDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

func (h GetDriversQueryHandler) Handle(ctx context.Context, query GetDriversQuery) (GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriversQueryResponse{}, err
	}

	drivers, err := listDrivers(h.db.WithContext(ctx), `SELECT `+driverColumns+` FROM drivers d ORDER BY d.name ASC, d.id ASC`)
	if err != nil {
		return GetDriversQueryResponse{}, err
	}

	response := GetDriversQueryResponse{Drivers: drivers}
	for _, d := range drivers {
		if d.Status == driver.Online {
			response.Online++
		}
	}
	return response, nil
}
