// Package arbitrage turns matched market pairs into ranked, deduplicated
// opportunities: the fee-aware stake-split math and the final assembly of
// results from both matching passes.
package arbitrage

import "math"

// Split is the result of dividing a stake across the two legs of an
// arbitrage pair so that both legs yield equal gross payout regardless of
// outcome.
type Split struct {
	InvestmentA float64 // stake on the buy leg
	InvestmentB float64 // stake on the opposing (sell-side) leg
	Payout      float64 // gross payout either way
	Fees        float64
	NetProfit   float64
	ROI         float64 // percent of total stake
	IsValid     bool    // net profit positive and finite
}

// Calculate splits totalStake across a buy leg priced at buyPrice and a sell
// leg priced at sellPrice (both prices for the same outcome direction on
// their respective platforms; the sell leg is executed by buying the
// opposing outcome at 1-sellPrice). Fees are a flat fraction of each leg's
// stake, not tiered or volume curves.
//
// Callers must special-case totalStake = 0 rather than divide through it;
// Calculate returns an all-zero invalid Split for that input.
func Calculate(buyPrice, sellPrice, totalStake, feeBuy, feeSell float64) Split {
	if totalStake <= 0 {
		return Split{}
	}
	costA := buyPrice
	costB := 1 - sellPrice
	if !priceable(costA) || !priceable(costB) {
		return Split{}
	}

	denom := costA + costB
	invA := totalStake * costA / denom
	invB := totalStake * costB / denom
	payout := invA / costA

	fees := invA*feeBuy + invB*feeSell
	net := payout - totalStake - fees
	roi := net / totalStake * 100

	return Split{
		InvestmentA: invA,
		InvestmentB: invB,
		Payout:      payout,
		Fees:        fees,
		NetProfit:   net,
		ROI:         roi,
		IsValid:     net > 0 && !math.IsNaN(roi) && !math.IsInf(roi, 0),
	}
}

// CalculateOpposing scores a pair of opposing-outcome buy prices (team A at
// priceX on one platform, team B at priceY on the other). Buying the
// opposing outcome at priceY is selling the first outcome at 1-priceY.
func CalculateOpposing(priceX, priceY, totalStake, feeX, feeY float64) Split {
	return Calculate(priceX, 1-priceY, totalStake, feeX, feeY)
}

func priceable(p float64) bool {
	return p > 0 && p < 1 && !math.IsNaN(p)
}
