/*
Package invoice provides the Invoice aggregate.

An invoice is issued as a draft for a delivered order. The order total is
gross: the net subtotal and the tax share are derived from it at the fixed
VAT rate and stored unrounded.

Example:

	inv, err := invoice.NewInvoice(customerID, orderID, 50.00, 0, time.Now())
	// invoice.RoundCents(inv.Subtotal()) == 42.02, due in 30 days
*/
package invoice
