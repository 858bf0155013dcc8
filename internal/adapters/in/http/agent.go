package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/message"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AcknowledgeTask handles POST /api/v1/agent/tasks/{taskId}/acknowledge.
func (s *Server) AcknowledgeTask(ctx echo.Context) error {
	taskID, err := pathID(ctx, "taskId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteTaskCommand(taskID)
	if err != nil {
		return s.fail(ctx, err)
	}

	t, err := s.handlers.CompleteTask.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, taskFromDomain(t))
}

// SendMessage handles POST /api/v1/agent/messages. Agents send on behalf of
// the back office; an empty channel means email.
func (s *Server) SendMessage(ctx echo.Context) error {
	var body NewMessage
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	recipient, err := recipientOf(body)
	if err != nil {
		return s.fail(ctx, err)
	}
	channel := message.UnknownChannel
	if body.Channel != "" {
		if channel, err = message.ParseChannel(body.Channel); err != nil {
			return s.fail(ctx, err)
		}
	}
	orderID, err := optionalID(body.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSendMessageCommand(orderID, message.Party{Type: message.AgentParty},
		recipient, channel, body.Subject, body.Message)
	if err != nil {
		return s.fail(ctx, err)
	}

	m, err := s.handlers.SendMessage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, messageFromDomain(m))
}

// recipientOf requires an id for customers and drivers only.
func recipientOf(body NewMessage) (message.Party, error) {
	partyType, err := message.ParsePartyType(body.RecipientType)
	if err != nil {
		return message.Party{}, err
	}
	id, err := optionalID(body.RecipientID)
	if err != nil {
		return message.Party{}, err
	}

	switch partyType {
	case message.CustomerParty, message.DriverParty:
		if id == nil {
			return message.Party{}, errs.NewValueIsRequiredError("recipient_id")
		}
	}
	return message.Party{Type: partyType, ID: id}, nil
}

// WebhookOrderUpdate handles POST /webhook/order/update. The update is only
// logged against the order.
func (s *Server) WebhookOrderUpdate(ctx echo.Context) error {
	var body WebhookUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := optionalID(body.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if orderID == nil {
		return s.fail(ctx, errs.NewValueIsRequiredError("order_id"))
	}

	text := body.Message
	if text == "" {
		text = "Status changed"
	}
	cmd, err := commands.NewLogMessageCommand(orderID, message.SystemSender, message.SystemSender,
		"Webhook update: "+text, message.Webhook)
	if err != nil {
		return s.fail(ctx, err)
	}

	m, err := s.handlers.LogMessage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, messageFromDomain(m))
}
