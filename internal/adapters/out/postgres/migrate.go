package postgres

import (
	"fmt"

	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/driverrepo"
	"logistics/internal/adapters/out/postgres/invoicerepo"
	"logistics/internal/adapters/out/postgres/messagerepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/taskrepo"
	"logistics/internal/adapters/out/postgres/table"

	"gorm.io/gorm"
)

// Models lists the row types of every table the store owns.
func Models() []any {
	return []any{
		&customerrepo.CustomerDTO{},
		&driverrepo.DriverDTO{},
		&orderrepo.OrderDTO{},
		&invoicerepo.InvoiceDTO{},
		&messagerepo.MessageDTO{},
		&taskrepo.TaskDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Truncate empties every table and restarts id sequences.
func Truncate(db *gorm.DB) error {
	return db.Exec(fmt.Sprintf(
		"TRUNCATE TABLE %s, %s, %s, %s, %s, %s RESTART IDENTITY",
		table.Customers, table.Drivers, table.Orders, table.Invoices, table.Messages, table.Tasks,
	)).Error
}
