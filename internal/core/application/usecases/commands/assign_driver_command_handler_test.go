package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssignDriverCommand(t *testing.T, orderID int64) commands.AssignDriverCommand {
	t.Helper()
	cmd, err := commands.NewAssignDriverCommand(kernel.ID(orderID))
	require.NoError(t, err)
	return cmd
}

func TestNewAssignDriverCommand_InvalidID(t *testing.T) {
	_, err := commands.NewAssignDriverCommand(0)
	require.Error(t, err)
}

func TestAssignDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.Pending, nil)
	drivers := []*driver.Driver{
		newTestDriver(2, "Zoe", driver.Online),
		newTestDriver(1, "Max", driver.Online),
	}

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	taskRepo := new(MockTaskRepository)
	uow := new(MockUoW)

	isNotifyTask := mock.MatchedBy(func(tk *task.Task) bool {
		return tk.Type() == task.NotifyDriver &&
			tk.Role() == task.Comms &&
			tk.Priority() == task.High &&
			*tk.Related().DriverID == kernel.ID(1) &&
			*tk.Related().OrderID == kernel.ID(10)
	})

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("ListActive", ctx).Return(drivers, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Add", ctx, isNotifyTask).Run(persistAs(30)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, services.NewDriverAssigner())
	result, err := handler.Handle(ctx, newAssignDriverCommand(t, 10))

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(1), result.DriverID, "Max sorts before Zoe")
	assert.Equal(t, kernel.ID(30), result.TaskID)
	assert.Equal(t, order.Assigned, testOrder.Status())
	assert.Equal(t, kernel.ID(1), *testOrder.DriverID())
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_NoActiveDriversWritesNothing(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.Pending, nil)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("ListActive", ctx).Return([]*driver.Driver{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, services.NewDriverAssigner())
	_, err := handler.Handle(ctx, newAssignDriverCommand(t, 10))

	require.ErrorIs(t, err, services.ErrNoActiveDrivers)
	assert.Equal(t, order.Pending, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "TaskRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignDriverCommandHandler_Handle_OrderNotPending(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.Assigned, idPtr(1))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, services.NewDriverAssigner())
	_, err := handler.Handle(ctx, newAssignDriverCommand(t, 10))

	require.ErrorIs(t, err, commands.ErrOrderNotPending)
	uow.AssertNotCalled(t, "DriverRepository")
}

func TestAssignDriverCommandHandler_Handle_GetOrderError(t *testing.T) {
	ctx := testContext(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(nil, errors.New("database error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, services.NewDriverAssigner())
	_, err := handler.Handle(ctx, newAssignDriverCommand(t, 10))

	require.EqualError(t, err, "database error")
}

func TestAssignDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)

	handler := commands.NewAssignDriverCommandHandler(factory, services.NewDriverAssigner())
	_, err := handler.Handle(testContext(t), commands.AssignDriverCommand{})

	require.ErrorIs(t, err, commands.ErrAssignDriverCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
