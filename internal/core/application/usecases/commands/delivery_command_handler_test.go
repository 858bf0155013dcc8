package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/invoice"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.Assigned, idPtr(1))
	cmd, err := commands.NewStartDeliveryCommand(10, idPtr(1))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	messageRepo := new(MockMessageRepository)
	uow := new(MockUoW)

	isPickupMessage := mock.MatchedBy(func(m *message.Message) bool {
		return m.Body() == "Started delivery to Marienplatz 1, Munich" &&
			m.Channel() == message.System &&
			m.Sender().Type == message.DriverParty &&
			*m.OrderID() == kernel.ID(10)
	})

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("MessageRepository").Return(messageRepo).Once(),
		messageRepo.On("Add", ctx, isPickupMessage).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	require.NoError(t, commands.NewStartDeliveryCommandHandler(factory).Handle(ctx, cmd))
	assert.Equal(t, order.InTransit, testOrder.Status())
	assert.NotNil(t, testOrder.PickupTime())
	messageRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartDeliveryCommandHandler_Handle_OtherDriver(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.Assigned, idPtr(1))
	cmd, err := commands.NewStartDeliveryCommand(10, idPtr(2))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewStartDeliveryCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDriverMismatch)
	assert.Equal(t, order.Assigned, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStartDeliveryCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.Pending, nil)
	cmd, err := commands.NewStartDeliveryCommand(10, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewStartDeliveryCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteDeliveryCommandHandler_Handle_CreatesOneInvoiceAndOneTask(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.InTransit, idPtr(1))
	cmd, err := commands.NewCompleteDeliveryCommand(10, idPtr(1), order.ProofOfDelivery{PhotoPath: "pod/10.jpg"}, " left at door ")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	taskRepo := new(MockTaskRepository)
	messageRepo := new(MockMessageRepository)
	uow := new(MockUoW)

	isInvoice := mock.MatchedBy(func(inv *invoice.Invoice) bool {
		return inv.OrderID() == 10 &&
			inv.CustomerID() == 3 &&
			inv.Status() == invoice.Draft &&
			inv.DueDate().Sub(inv.IssueDate()).Hours() == 30*24
	})
	isConfirmationTask := mock.MatchedBy(func(tk *task.Task) bool {
		return tk.Type() == task.SendEmail &&
			tk.Role() == task.Secretary &&
			tk.Priority() == task.Normal &&
			*tk.Related().OrderID == kernel.ID(10) &&
			*tk.Related().CustomerID == kernel.ID(3)
	})
	isCompletionMessage := mock.MatchedBy(func(m *message.Message) bool {
		return m.Body() == "Delivery completed. Notes: left at door"
	})

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		invoiceRepo.On("Add", ctx, isInvoice).Run(persistAs(40)).Return(nil).Once(),
		uow.On("TaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Add", ctx, isConfirmationTask).Run(persistAs(41)).Return(nil).Once(),
		uow.On("MessageRepository").Return(messageRepo).Once(),
		messageRepo.On("Add", ctx, isCompletionMessage).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewCompleteDeliveryCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(40), result.InvoiceID)
	assert.Equal(t, kernel.ID(41), result.TaskID)
	assert.Equal(t, order.Delivered, testOrder.Status())
	assert.Equal(t, "pod/10.jpg", testOrder.ProofOfDelivery().PhotoPath)
	invoiceRepo.AssertNumberOfCalls(t, "Add", 1)
	taskRepo.AssertNumberOfCalls(t, "Add", 1)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_InvoiceErrorRollsBack(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.InTransit, idPtr(1))
	cmd, err := commands.NewCompleteDeliveryCommand(10, nil, order.ProofOfDelivery{}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	uow.On("InvoiceRepository").Return(invoiceRepo).Once()
	invoiceRepo.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewCompleteDeliveryCommandHandler(factory).Handle(ctx, cmd)

	require.EqualError(t, err, "insert failed")
	uow.AssertNotCalled(t, "TaskRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_NotInTransit(t *testing.T) {
	ctx := testContext(t)
	testOrder := newTestOrder(10, order.Assigned, idPtr(1))
	cmd, err := commands.NewCompleteDeliveryCommand(10, nil, order.ProofOfDelivery{}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, kernel.ID(10)).Return(testOrder, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewCompleteDeliveryCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	uow.AssertNotCalled(t, "InvoiceRepository")
}

func TestDeliveryCommands_ZeroValue(t *testing.T) {
	var start commands.StartDeliveryCommand
	var complete commands.CompleteDeliveryCommand

	require.ErrorIs(t, start.Validate(), commands.ErrStartDeliveryCommandIsNotConstructed)
	require.ErrorIs(t, complete.Validate(), commands.ErrCompleteDeliveryCommandIsNotConstructed)
}

func TestNewStartDeliveryCommand_InvalidDriver(t *testing.T) {
	_, err := commands.NewStartDeliveryCommand(10, idPtr(-1))
	require.Error(t, err)
}
