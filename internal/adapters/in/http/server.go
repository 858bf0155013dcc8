package http

import (
	"context"
	"log/slog"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/core/domain/model/task"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handler is the shape shared by every command and query handler.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// ActionHandler is a command handler that returns nothing but an error.
type ActionHandler[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	// Command handlers
	CreateOrder        Handler[commands.CreateOrderCommand, commands.CreateOrderResult]
	DriverLogin        Handler[commands.DriverLoginCommand, commands.DriverLoginResult]
	UpdateDriverStatus Handler[commands.UpdateDriverStatusCommand, *driver.Driver]
	StartDelivery      ActionHandler[commands.StartDeliveryCommand]
	CompleteDelivery   Handler[commands.CompleteDeliveryCommand, commands.CompleteDeliveryResult]
	PostDriverUpdate   Handler[commands.PostDriverUpdateCommand, kernel.ID]
	CreateTask         Handler[commands.CreateTaskCommand, *task.Task]
	CompleteTask       Handler[commands.CompleteTaskCommand, *task.Task]
	SendMessage        Handler[commands.SendMessageCommand, *message.Message]
	LogMessage         Handler[commands.LogMessageCommand, *message.Message]

	// Query handlers
	GetOrderStatus    Handler[queries.GetOrderStatusQuery, queries.GetOrderStatusQueryResponse]
	GetDriverOrders   Handler[queries.GetDriverOrdersQuery, []queries.OrderView]
	GetSummary        Handler[queries.GetSummaryQuery, queries.GetSummaryQueryResponse]
	GetPendingTasks   Handler[queries.GetPendingTasksQuery, []queries.TaskView]
	GetUnpaidInvoices Handler[queries.GetUnpaidInvoicesQuery, queries.GetUnpaidInvoicesQueryResponse]
	GetDrivers        Handler[queries.GetDriversQuery, queries.GetDriversQueryResponse]
}

// Server exposes the logistics use cases over JSON.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts every route on e. The validator sees every request and is
// expected to pass through paths it does not describe.
func (s *Server) Register(e *echo.Echo, validator echo.MiddlewareFunc) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.Use(validator)

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/api/v1/customer/orders", s.CreateOrder)
	e.GET("/api/v1/customer/orders/:orderId", s.GetOrderStatus)

	e.POST("/api/v1/driver/login", s.DriverLogin)
	e.POST("/api/v1/driver/status", s.UpdateDriverStatus)
	e.GET("/api/v1/driver/:driverId/orders", s.GetDriverOrders)
	e.POST("/api/v1/driver/orders/:orderId/start", s.StartDelivery)
	e.POST("/api/v1/driver/orders/:orderId/complete", s.CompleteDelivery)
	e.POST("/api/v1/driver/orders/:orderId/update", s.PostDriverUpdate)

	e.GET("/api/v1/admin/dashboard", s.GetDashboard)
	e.GET("/api/v1/admin/tasks", s.GetPendingTasks)
	e.POST("/api/v1/admin/tasks", s.CreateTask)
	e.GET("/api/v1/admin/invoices/unpaid", s.GetUnpaidInvoices)
	e.GET("/api/v1/admin/drivers", s.GetDrivers)

	e.POST("/api/v1/agent/tasks/:taskId/acknowledge", s.AcknowledgeTask)
	e.POST("/api/v1/agent/messages", s.SendMessage)

	e.POST("/webhook/order/update", s.WebhookOrderUpdate)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
