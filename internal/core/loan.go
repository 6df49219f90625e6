package core

import (
	"fmt"
	"math"
)

// Loan tracks a liability with an APR. EndingBalance starts equal to
// StartingBalance and is reduced by budgeted principal transfers during the
// expected-balance pass.
type Loan struct {
	Name            string
	APR             float64 // annual rate, e.g. 0.045
	StartingBalance Money
	EndingBalance   Money
}

// NewLoan creates a loan at the start of a budgeting period.
func NewLoan(name string, apr float64, starting Money) *Loan {
	return &Loan{
		Name:            name,
		APR:             apr,
		StartingBalance: starting,
		EndingBalance:   starting,
	}
}

// ReducePrincipal lowers the projected ending balance by a budgeted payment.
func (l *Loan) ReducePrincipal(amount Money) {
	l.EndingBalance = l.EndingBalance.Sub(amount)
}

// PayoffMonths computes how many months it takes to fully amortize the
// remaining balance at the payment rate implied by this period:
//
//	payment = StartingBalance - EndingBalance
//	months  = log(1 - r*ending/payment) / log(1/(1+r)),  r = APR/12
//
// rounded to the nearest month. A period whose net payment does not reduce
// the balance, or whose payment is below the monthly interest accrual, has
// no finite payoff and returns InvalidPayoffError.
func (l *Loan) PayoffMonths() (int, error) {
	payment := l.StartingBalance.Sub(l.EndingBalance).Units()
	if payment <= 0 {
		return 0, &InvalidPayoffError{Loan: l.Name}
	}
	if l.APR == 0 {
		return int(math.Round(l.EndingBalance.Units() / payment)), nil
	}
	r := l.APR / 12
	arg := 1 - r*l.EndingBalance.Units()/payment
	if arg <= 0 {
		return 0, &InvalidPayoffError{Loan: l.Name}
	}
	months := math.Log(arg) / math.Log(1/(1+r))
	return int(math.Round(months)), nil
}

// PayoffLabel renders the payoff period for a snapshot cell, e.g. "35 mo".
// Periods with no finite payoff render as "n/a".
func (l *Loan) PayoffLabel() string {
	months, err := l.PayoffMonths()
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%d mo", months)
}
