package postgres_test

import (
	"context"
	"testing"
	"time"

	store "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/adapters/out/postgres/table"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite exercises transactions spanning several
// repositories against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = store.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.TaskRepository())
	suite.NotNil(uow2.CustomerRepository())
	suite.NotNil(uow2.InvoiceRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	c := suite.newCustomer()
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))

	o := suite.newOrder(c.ID())
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	orderID := o.ID()
	t, err := task.NewTask(task.Spec{
		Title:   "Assign driver for " + o.Number().String(),
		Type:    task.AssignDriver,
		Related: task.Related{OrderID: &orderID},
	}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TaskRepository().Add(ctx, t))

	suite.Equal(3, uow.(*store.GormUnitOfWork).TrackedCount())
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), stored.Number())

	pending, err := reader.TaskRepository().ListPending(ctx, nil)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(o.ID(), *pending[0].Related().OrderID)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	c := suite.newCustomer()
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().CustomerRepository().Get(ctx, c.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	d, err := driver.NewDriver("Max", "0170")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DriverRepository().Add(ctx, d))

	stored, err := suite.factory.Create().DriverRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal("Max", stored.Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetForUpdateLocksRow() {
	ctx := context.Background()
	c := suite.newCustomer()
	suite.Require().NoError(suite.factory.Create().CustomerRepository().Add(ctx, c))
	o := suite.newOrder(c.ID())
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	waiter := suite.factory.Create()
	suite.Require().NoError(waiter.Begin(waitCtx))
	defer func() { _ = waiter.Rollback(ctx) }()

	_, err = waiter.OrderRepository().GetForUpdate(waitCtx, o.ID())
	suite.Require().Error(err, "second locker must block until the first transaction ends")

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "plain reads are not blocked")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTable_InsertAndUpdate() {
	ctx := context.Background()
	db := suite.database.DB

	id, err := table.Insert(ctx, db, table.Drivers, table.Fields{
		"name":   "Lea",
		"phone":  "0171",
		"status": driver.Offline.String(),
	})
	suite.Require().NoError(err)
	suite.Positive(id)

	var before struct{ UpdatedAt time.Time }
	suite.Require().NoError(db.Raw("SELECT updated_at FROM drivers WHERE id = ?", id).Scan(&before).Error)

	updated, err := table.Update(ctx, db, table.Drivers, id, table.Fields{"status": driver.Online.String()})
	suite.Require().NoError(err)
	suite.True(updated)

	d, err := suite.factory.Create().DriverRepository().Get(ctx, kernel.ID(id))
	suite.Require().NoError(err)
	suite.Equal(driver.Online, d.Status())

	var after struct{ UpdatedAt time.Time }
	suite.Require().NoError(db.Raw("SELECT updated_at FROM drivers WHERE id = ?", id).Scan(&after).Error)
	suite.False(after.UpdatedAt.Before(before.UpdatedAt))

	updated, err = table.Update(ctx, db, table.Drivers, id+1000, table.Fields{"status": "online"})
	suite.Require().NoError(err)
	suite.False(updated, "missing row reports false")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTable_UniqueViolationIsConflict() {
	ctx := context.Background()
	c := suite.newCustomer()
	suite.Require().NoError(suite.factory.Create().CustomerRepository().Add(ctx, c))
	o := suite.newOrder(c.ID())
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	_, err := table.Insert(ctx, suite.database.DB, table.Orders, table.Fields{
		"order_number":     o.Number().String(),
		"customer_id":      c.ID().Int64(),
		"pickup_address":   "A",
		"delivery_address": "B",
		"base_price":       1,
		"total_price":      1,
		"status":           order.Pending.String(),
		"deadline":         time.Now(),
	})
	suite.Require().Error(err)
	suite.Require().ErrorIs(table.Classify(err, "order", nil), errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) newCustomer() *customer.Customer {
	c, err := customer.NewCustomer(
		customer.Contact{Name: "Anna Schmidt", Phone: "+49 30 1234", Email: "anna@example.com"},
		customer.Address{Street: "Hauptstr. 10", City: "Berlin"},
		"",
		time.Now(),
	)
	suite.Require().NoError(err)
	return c
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(customerID kernel.ID) *order.Order {
	o, err := order.NewOrder(customerID, order.Route{
		PickupAddress:   "Hauptstr. 10, Berlin",
		DeliveryAddress: "Marienplatz 1, Munich",
	}, 50, time.Time{}, order.Parcel{Description: "Documents", WeightKg: 1.5}, time.Now())
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
