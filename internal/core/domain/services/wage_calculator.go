package services

import (
	"fmt"
	"math"

	"logistics/internal/pkg/errs"
)

// DefaultRatePerDelivery is the flat amount paid per delivered order.
const DefaultRatePerDelivery = 5.00

// WageCalculator applies a flat per-delivery rate.
type WageCalculator struct {
	ratePerDelivery float64
}

// NewWageCalculator returns a calculator for the given rate. A zero rate falls
// back to DefaultRatePerDelivery.
func NewWageCalculator(ratePerDelivery float64) (WageCalculator, error) {
	if ratePerDelivery == 0 {
		ratePerDelivery = DefaultRatePerDelivery
	}
	if ratePerDelivery < 0 {
		return WageCalculator{}, errs.NewValueIsInvalidErrorWithCause(
			"rate per delivery", fmt.Errorf("%.2f is negative", ratePerDelivery),
		)
	}
	return WageCalculator{ratePerDelivery: ratePerDelivery}, nil
}

// Calculate returns the wage for the number of delivered orders, rounded to cents.
func (c WageCalculator) Calculate(deliveredOrders int) float64 {
	if deliveredOrders <= 0 {
		return 0
	}
	return math.Round(float64(deliveredOrders)*c.rate()*100) / 100
}

func (c WageCalculator) rate() float64 {
	if c.ratePerDelivery == 0 {
		return DefaultRatePerDelivery
	}
	return c.ratePerDelivery
}
