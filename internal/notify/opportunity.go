package notify

import (
	"fmt"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// maxAlertRows caps how many opportunities one alert lists; the remainder is
// summarized as a count.
const maxAlertRows = 5

func headline(n int) string {
	if n == 1 {
		return "1 arbitrage opportunity found"
	}
	return fmt.Sprintf("%d arbitrage opportunities found", n)
}

// legLine renders one opportunity's trade instruction.
func legLine(o domain.Opportunity) string {
	return fmt.Sprintf("buy %s %s @ %.2f / sell %s %s @ %.2f  spread %.1fpp roi %.1f%%",
		o.BestBuy.Platform, o.BestBuy.Outcome().Name, o.BestBuy.Price,
		o.BestSell.Platform, o.BestSell.Outcome().Name, o.BestSell.Price,
		o.Spread, o.ROI,
	)
}

// capRows returns the rows an alert shows and how many were left out.
func capRows(opps []domain.Opportunity) ([]domain.Opportunity, int) {
	if len(opps) <= maxAlertRows {
		return opps, 0
	}
	return opps[:maxAlertRows], len(opps) - maxAlertRows
}
