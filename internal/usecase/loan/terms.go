package loan

import "github.com/shopspring/decimal"

var (
	one    = decimal.NewFromInt(1)
	two    = decimal.NewFromInt(2)
	twelve = decimal.NewFromInt(12)

	// Below this monthly rate the closed-form annuity factor computes
	// (1+r)^n−1 from quantities that nearly cancel; the series expansion
	// takes over.
	smallRate = decimal.New(1, -9)
)

// MonthlyPayment computes the fixed amortized payment that repays principal
// plus interest over termMonths. Result is rounded half-up to 2 decimal
// places in the loan currency's minor unit. Derived only — never accepted
// from a client.
func MonthlyPayment(principal, annualRate decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	if annualRate.IsZero() {
		return principal.DivRound(n, 2)
	}

	r := annualRate.Div(twelve)
	if r.LessThan(smallRate) {
		// (1+r)^n − 1 ≈ n·r·(1 + (n−1)·r/2), so the payment per unit of
		// principal is 1/n + r·(n+1)/(2n).
		perUnit := one.Div(n).Add(r.Mul(n.Add(one)).Div(n.Mul(two)))
		return principal.Mul(perUnit).Round(2)
	}

	pow := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(pow).DivRound(pow.Sub(one), 2)
}
