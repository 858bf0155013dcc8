package cmd

import (
	"fmt"
	"io"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/messaging/logsink"
	"logistics/internal/adapters/out/messaging/rabbitmq"
	"logistics/internal/adapters/out/messaging/ratelimit"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/application/workflow"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	messenger  ports.Messenger
	logger     *slog.Logger
	closers    []io.Closer
}

// NewCompositionRoot wires the messenger: RabbitMQ when a URL is configured,
// the log sink otherwise, throttled in both cases.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	var next ports.Messenger = logsink.NewMessenger(logger)
	if config.RabbitMQURL != "" {
		publisher, err := rabbitmq.Dial(rabbitmq.Config{URL: config.RabbitMQURL, Exchange: config.RabbitMQExchange})
		if err != nil {
			return nil, fmt.Errorf("connect messenger: %w", err)
		}
		root.closers = append(root.closers, publisher)
		next = publisher
	}
	root.messenger = ratelimit.NewMessenger(next, config.MessengerRatePerSecond, config.MessengerBurst)

	return root, nil
}

// Close releases the broker connection, if any.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) taskUoWs() commands.TaskUoWFactory {
	return FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) messageUoWs() commands.MessageUoWFactory {
	return FuncMessageUoWFactory(func() commands.MessageUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWs() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

// Commands

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uows())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.uows(), services.NewDriverAssigner())
}

func (c *CompositionRoot) CreateDriverLoginCommandHandler() commands.DriverLoginCommandHandler {
	return commands.NewDriverLoginCommandHandler(c.uows())
}

func (c *CompositionRoot) CreateUpdateDriverStatusCommandHandler() commands.UpdateDriverStatusCommandHandler {
	return commands.NewUpdateDriverStatusCommandHandler(c.driverUoWs())
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.uows())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.uows())
}

func (c *CompositionRoot) CreatePostDriverUpdateCommandHandler() commands.PostDriverUpdateCommandHandler {
	return commands.NewPostDriverUpdateCommandHandler(c.uows())
}

func (c *CompositionRoot) CreateCreateInvoiceCommandHandler() commands.CreateInvoiceCommandHandler {
	return commands.NewCreateInvoiceCommandHandler(c.uows(), c.config.InvoiceDedupPolicy)
}

func (c *CompositionRoot) CreateCreateTaskCommandHandler() commands.CreateTaskCommandHandler {
	return commands.NewCreateTaskCommandHandler(c.taskUoWs())
}

func (c *CompositionRoot) CreateCompleteTaskCommandHandler() commands.CompleteTaskCommandHandler {
	return commands.NewCompleteTaskCommandHandler(c.taskUoWs())
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.messageUoWs(), c.messenger)
}

func (c *CompositionRoot) CreateLogMessageCommandHandler() commands.LogMessageCommandHandler {
	return commands.NewLogMessageCommandHandler(c.messageUoWs())
}

// Queries

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverOrdersQueryHandler() queries.GetDriverOrdersQueryHandler {
	return queries.NewGetDriverOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSummaryQueryHandler() queries.GetSummaryQueryHandler {
	return queries.NewGetSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingTasksQueryHandler() queries.GetPendingTasksQueryHandler {
	return queries.NewGetPendingTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnpaidInvoicesQueryHandler() queries.GetUnpaidInvoicesQueryHandler {
	return queries.NewGetUnpaidInvoicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB)
}

// Workflow

// CreateDispatcher registers every role.
func (c *CompositionRoot) CreateDispatcher() (*workflow.Dispatcher, error) {
	wages, err := services.NewWageCalculator(c.config.DriverWageRate)
	if err != nil {
		return nil, err
	}
	send := c.CreateSendMessageCommandHandler()

	d := workflow.NewDispatcher(c.taskUoWs(), c.logger, workflow.Config{AutoAcknowledge: c.config.AutoAcknowledge})
	d.RegisterRole(workflow.NewSecretary(c.uows(), send, c.logger))
	d.RegisterRole(workflow.NewAccounting(c.uows(), c.CreateCreateInvoiceCommandHandler(), send, wages, c.logger))
	d.RegisterRole(workflow.NewScheduler(c.uows(), c.CreateAssignDriverCommandHandler(),
		c.CreateCreateTaskCommandHandler(), send, c.logger))
	d.RegisterRole(workflow.NewComms(c.uows(), send, c.logger))
	d.RegisterRole(workflow.NewEscalation(c.logger))
	return d, nil
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	d, err := c.CreateDispatcher()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(d, c.CreateCreateTaskCommandHandler(), c.config.JobsConfig(), c.logger), nil
}

// Adapters

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		DriverLogin:        c.CreateDriverLoginCommandHandler(),
		UpdateDriverStatus: c.CreateUpdateDriverStatusCommandHandler(),
		StartDelivery:      c.CreateStartDeliveryCommandHandler(),
		CompleteDelivery:   c.CreateCompleteDeliveryCommandHandler(),
		PostDriverUpdate:   c.CreatePostDriverUpdateCommandHandler(),
		CreateTask:         c.CreateCreateTaskCommandHandler(),
		CompleteTask:       c.CreateCompleteTaskCommandHandler(),
		SendMessage:        c.CreateSendMessageCommandHandler(),
		LogMessage:         c.CreateLogMessageCommandHandler(),

		GetOrderStatus:    c.CreateGetOrderStatusQueryHandler(),
		GetDriverOrders:   c.CreateGetDriverOrdersQueryHandler(),
		GetSummary:        c.CreateGetSummaryQueryHandler(),
		GetPendingTasks:   c.CreateGetPendingTasksQueryHandler(),
		GetUnpaidInvoices: c.CreateGetUnpaidInvoicesQueryHandler(),
		GetDrivers:        c.CreateGetDriversQueryHandler(),
	}, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncMessageUoWFactory func() commands.MessageUoW

func (f FuncMessageUoWFactory) Create() commands.MessageUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}
