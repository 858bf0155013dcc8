// Package table provides whitelisted, map-based row writes shared by the
// repositories: Insert returns the generated id, Update stamps updated_at.
//
// Misuse (unknown table, empty field set, malformed column name) is a
// programming error and panics.
package table

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Name is a table the store is allowed to write.
type Name string

const (
	Customers Name = "customers"
	Orders    Name = "orders"
	Drivers   Name = "drivers"
	Invoices  Name = "invoices"
	Messages  Name = "messages"
	Tasks     Name = "tasks"
)

var known = map[Name]struct{}{
	Customers: {},
	Orders:    {},
	Drivers:   {},
	Invoices:  {},
	Messages:  {},
	Tasks:     {},
}

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Fields maps column names to values.
type Fields map[string]any

// Insert writes one row and returns its id. created_at and updated_at are set
// to now unless present in fields.
//
// Example:
//
//	id, err := table.Insert(ctx, tx, table.Messages, table.Fields{
//	    "order_id": 42,
//	    "message":  "Driver is on the way",
//	    "channel":  "sms",
//	})
func Insert(ctx context.Context, db *gorm.DB, name Name, fields Fields) (int64, error) {
	mustBeWritable(name, fields)

	now := time.Now()
	row := fields.with("created_at", now).with("updated_at", now)
	columns := row.columns()

	placeholders := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, c := range columns {
		placeholders[i] = "?"
		values[i] = row[c]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		name, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)

	var id int64
	if err := db.WithContext(ctx).Raw(query, values...).Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// Update writes fields into the row with the id and always refreshes
// updated_at. It reports whether a row was changed.
func Update(ctx context.Context, db *gorm.DB, name Name, id int64, fields Fields) (bool, error) {
	mustBeWritable(name, fields)

	row := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row["updated_at"] = time.Now()

	result := db.WithContext(ctx).Table(string(name)).Where("id = ?", id).Updates(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func mustBeWritable(name Name, fields Fields) {
	if _, ok := known[name]; !ok {
		panic(fmt.Sprintf("table: %q is not a writable table", name))
	}
	if len(fields) == 0 {
		panic(fmt.Sprintf("table: empty field set for %s", name))
	}
	for c := range fields {
		if !columnPattern.MatchString(c) {
			panic(fmt.Sprintf("table: %q is not a valid column of %s", c, name))
		}
	}
}

func (f Fields) with(column string, value any) Fields {
	if _, ok := f[column]; ok {
		return f
	}
	out := make(Fields, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[column] = value
	return out
}

func (f Fields) columns() []string {
	columns := make([]string, 0, len(f))
	for c := range f {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}
