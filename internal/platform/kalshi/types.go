package kalshi

import (
	"math"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// KalshiMarket represents a market as returned by the Kalshi REST API.
// Prices arrive in cents (1-99).
type KalshiMarket struct {
	Ticker         string  `json:"ticker"`
	EventTicker    string  `json:"event_ticker"`
	Title          string  `json:"title"`
	Subtitle       string  `json:"subtitle"`
	Status         string  `json:"status"` // "open", "closed", "settled"
	YesBid         float64 `json:"yes_bid"`
	YesAsk         float64 `json:"yes_ask"`
	NoBid          float64 `json:"no_bid"`
	NoAsk          float64 `json:"no_ask"`
	LastPrice      float64 `json:"last_price"`
	Volume         int64   `json:"volume"`
	OpenInterest   int64   `json:"open_interest"`
	Liquidity      float64 `json:"liquidity"`
	Category       string  `json:"category"`
	YesSubTitle    string  `json:"yes_sub_title"`
	NoSubTitle     string  `json:"no_sub_title"`
	ExpirationTime string  `json:"expiration_time"`
	CloseTime      string  `json:"close_time"`
}

// ToMarketRecord flattens a KalshiMarket into the normalized record the
// matchers consume. It returns false for non-open markets and unpriced ones.
func (m *KalshiMarket) ToMarketRecord() (domain.MarketRecord, bool) {
	if m.Status != "open" && m.Status != "active" {
		return domain.MarketRecord{}, false
	}

	yes := centsToPrice(m.YesAsk, m.YesBid, m.LastPrice)
	no := centsToPrice(m.NoAsk, m.NoBid, 100-m.LastPrice)
	if yes <= 0 || no <= 0 {
		return domain.MarketRecord{}, false
	}

	outcomes := []domain.Outcome{
		{Name: "Yes", Price: yes, Percent: toPercent(yes), Color: "green", TeamHint: m.YesSubTitle},
		{Name: "No", Price: no, Percent: toPercent(no), Color: "red", TeamHint: m.NoSubTitle},
	}

	return domain.MarketRecord{
		Platform:  domain.PlatformKalshi,
		ID:        "kalshi:" + m.Ticker,
		Title:     m.Title,
		Outcomes:  outcomes,
		Volume:    float64(m.Volume),
		Liquidity: m.Liquidity / 100,
		Link:      "https://kalshi.com/markets/" + m.Ticker,
		EventDate: isoDate(m.ExpirationTime, m.CloseTime),
	}, true
}

// centsToPrice picks the first usable quote (ask, then bid, then last) and
// converts cents to a probability.
func centsToPrice(quotes ...float64) float64 {
	for _, q := range quotes {
		if q > 0 && q < 100 {
			return q / 100
		}
	}
	return 0
}

func toPercent(price float64) int {
	return int(math.Round(price * 100))
}

func isoDate(stamps ...string) string {
	for _, s := range stamps {
		if len(s) >= 10 {
			return s[:10]
		}
	}
	return ""
}

// KalshiErrorResponse represents a Kalshi API error response.
type KalshiErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
