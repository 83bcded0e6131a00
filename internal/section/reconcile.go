package section

import (
	"fmt"
	"math"

	"paymax/internal/domain"
)

// reconcileTolerance absorbs rounding noise when comparing aggregates
// against component sums.
const reconcileTolerance = 1.00

// Reconcile compares the record's aggregates against its component sums and
// returns observations. Discrepancies never fail the parse; they surface as
// messages next to the result.
func Reconcile(p *domain.Payslip) []domain.ValidationMessage {
	var msgs []domain.ValidationMessage

	if len(p.Earnings) > 0 && p.Credits > 0 {
		sum := p.SumEarnings()
		if math.Abs(sum-p.Credits) <= reconcileTolerance {
			msgs = append(msgs, domain.ValidationMessage{
				Code:    "components_balanced",
				Message: fmt.Sprintf("components balanced at %.2f", p.Credits),
			})
		} else {
			msgs = append(msgs, domain.ValidationMessage{
				Code: "credits_mismatch",
				Message: fmt.Sprintf("credits %.2f do not match earnings sum %.2f (difference %.2f)",
					p.Credits, sum, math.Abs(sum-p.Credits)),
			})
		}
	}

	if p.Debits > 0 && p.Credits > 0 && p.Debits > p.Credits {
		msgs = append(msgs, domain.ValidationMessage{
			Code: "deductions_exceed_earnings",
			Message: fmt.Sprintf("possible recovery: deductions exceed earnings by %.2f",
				p.Debits-p.Credits),
		})
	}

	return msgs
}
