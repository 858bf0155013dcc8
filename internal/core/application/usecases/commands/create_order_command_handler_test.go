package commands_test

import (
	"errors"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		testContact, customer.Address{City: "Berlin"}, "", testRoute, order.Parcel{WeightKg: 2}, nil, time.Time{},
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_NewCustomer(t *testing.T) {
	ctx := testContext(t)
	cmd := newCreateOrderCommand(t)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)
	notFound := errs.NewObjectNotFoundError("customer", "x")

	isAssignTask := mock.MatchedBy(func(tk *task.Task) bool {
		return tk.Type() == task.AssignDriver &&
			tk.Role() == task.Scheduler &&
			tk.Priority() == task.High &&
			tk.Related().OrderID != nil && *tk.Related().OrderID == kernel.ID(10) &&
			tk.Related().CustomerID != nil && *tk.Related().CustomerID == kernel.ID(3)
	})

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("FindByEmail", ctx, "anna@example.com").Return(nil, notFound).Once(),
		customerRepo.On("Add", ctx, mock.AnythingOfType("*customer.Customer")).Run(persistAs(3)).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(persistAs(10)).Return(nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Add", ctx, isAssignTask).Run(persistAs(20)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(10), result.OrderID)
	assert.Equal(t, kernel.ID(3), result.CustomerID)
	assert.Equal(t, kernel.ID(20), result.TaskID)
	assert.False(t, result.OrderNumber.IsZero())
	customerRepo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
	customerRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NewEmailWithKnownPhoneRegistersCustomer(t *testing.T) {
	ctx := testContext(t)
	contact := customer.Contact{Name: "Bob Weber", Phone: "+49 30 1234", Email: "bob-new@example.com"}
	cmd, err := commands.NewCreateOrderCommand(contact, customer.Address{}, "", testRoute, order.Parcel{}, nil, time.Time{})
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	customerRepo.On("FindByEmail", ctx, "bob-new@example.com").
		Return(nil, errs.NewObjectNotFoundError("customer", "bob-new@example.com")).Once()
	customerRepo.On("FindByPhone", ctx, mock.Anything).Return(newTestCustomer(7), nil).Maybe()
	customerRepo.On("Add", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.Contact().Email == "bob-new@example.com"
	})).Run(persistAs(8)).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.CustomerID() == 8
	})).Run(persistAs(12)).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo).Once()
	taskRepo.On("Add", ctx, mock.AnythingOfType("*task.Task")).Run(persistAs(22)).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(8), result.CustomerID)
	customerRepo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
	customerRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoEmailMatchesByPhone(t *testing.T) {
	ctx := testContext(t)
	contact := customer.Contact{Name: "Anna Schmidt", Phone: " +49 30 1234 "}
	cmd, err := commands.NewCreateOrderCommand(contact, customer.Address{}, "", testRoute, order.Parcel{}, nil, time.Time{})
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	customerRepo.On("FindByPhone", ctx, "+49 30 1234").Return(newTestCustomer(7), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(persistAs(13)).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo).Once()
	taskRepo.On("Add", ctx, mock.AnythingOfType("*task.Task")).Run(persistAs(23)).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(7), result.CustomerID)
	customerRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	customerRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ExistingCustomerByEmail(t *testing.T) {
	ctx := testContext(t)
	cmd := newCreateOrderCommand(t)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	customerRepo.On("FindByEmail", ctx, "anna@example.com").Return(newTestCustomer(7), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.CustomerID() == 7 && o.Status() == order.Pending && o.TotalPrice() == commands.DefaultOrderPrice
	})).Run(persistAs(11)).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo).Once()
	taskRepo.On("Add", ctx, mock.AnythingOfType("*task.Task")).Run(persistAs(21)).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(7), result.CustomerID)
	customerRepo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
	customerRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)

	_, err := commands.NewCreateOrderCommandHandler(factory).Handle(testContext(t), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := testContext(t)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	_, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, newCreateOrderCommand(t))

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_TaskAddErrorRollsBack(t *testing.T) {
	ctx := testContext(t)

	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	customerRepo.On("FindByEmail", ctx, mock.Anything).Return(newTestCustomer(7), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.Anything).Run(persistAs(11)).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo).Once()
	taskRepo.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, newCreateOrderCommand(t))

	require.EqualError(t, err, "insert failed")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_LookupError(t *testing.T) {
	ctx := testContext(t)

	customerRepo := new(MockCustomerRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	customerRepo.On("FindByEmail", ctx, mock.Anything).Return(nil, errors.New("connection reset")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewCreateOrderCommandHandler(factory).Handle(ctx, newCreateOrderCommand(t))

	require.EqualError(t, err, "connection reset")
	customerRepo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
}
