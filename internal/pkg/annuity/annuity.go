// Package annuity computes amortized loan installments with decimal
// arithmetic so repeated float rounding cannot drift the schedule.
package annuity

import "github.com/shopspring/decimal"

// MonthlyPayment returns the fixed monthly installment that amortizes
// principal at annualRate percent per annum over term months, rounded to two
// decimal places. A zero rate degenerates to principal divided by term.
func MonthlyPayment(principal, annualRate float64, term int) float64 {
	if term < 1 || principal <= 0 {
		return 0
	}

	p := decimal.NewFromFloat(principal)
	months := decimal.NewFromInt(int64(term))

	if annualRate == 0 {
		return p.Div(months).Round(2).InexactFloat64()
	}

	// monthly rate = annualRate / 100 / 12
	i := decimal.NewFromFloat(annualRate).Div(decimal.NewFromInt(1200))
	one := decimal.New(1, 0)
	growth := one.Add(i).Pow(months)

	// P * i * (1+i)^n / ((1+i)^n - 1)
	payment := p.Mul(i).Mul(growth).Div(growth.Sub(one))
	return payment.Round(2).InexactFloat64()
}
