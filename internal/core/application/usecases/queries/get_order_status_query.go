package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery is the customer-facing view of one order.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	status, err := NewGetOrderStatusQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
type GetOrderStatusQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(orderID kernel.ID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}
	return GetOrderStatusQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.ID { return q.orderID }

// GetOrderStatusQueryResponse carries the order, its driver when assigned,
// and its messages newest first.
type GetOrderStatusQueryResponse struct {
	Order    OrderView
	Driver   *DriverView
	Messages []MessageView
}
