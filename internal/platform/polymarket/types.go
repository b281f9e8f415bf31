package polymarket

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// flexBool unmarshals from JSON bool or string ("true"/"false") so Gamma API
// responses work whether "active" is sent as bool or string.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// APIEvent represents an event as returned by the Polymarket Gamma API.
// An event groups one or more related markets.
type APIEvent struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	Active  flexBool    `json:"active"`
	Closed  bool        `json:"closed"`
	Markets []APIMarket `json:"markets"`
}

// APIMarket represents a market as returned by the Polymarket Gamma API.
// Outcomes and prices arrive as JSON-encoded string arrays inside strings.
type APIMarket struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Slug          string   `json:"slug"`
	Active        flexBool `json:"active"`
	Closed        bool     `json:"closed"`
	Outcomes      string   `json:"outcomes"`      // e.g. "[\"Yes\",\"No\"]"
	OutcomePrices string   `json:"outcomePrices"` // e.g. "[\"0.58\",\"0.42\"]"
	Volume        string   `json:"volume"`
	Liquidity     string   `json:"liquidity"`
	EndDateISO    string   `json:"endDateIso"`
	GameStartTime string   `json:"gameStartTime"`
}

// ToMarketRecord flattens an APIMarket into the normalized record the
// matchers consume. It returns false when the market has no priced outcomes.
func (m *APIMarket) ToMarketRecord() (domain.MarketRecord, bool) {
	names := decodeStringArray(m.Outcomes)
	prices := decodeStringArray(m.OutcomePrices)
	if len(names) == 0 || len(names) != len(prices) {
		return domain.MarketRecord{}, false
	}

	outcomes := make([]domain.Outcome, 0, len(names))
	for i, name := range names {
		price, err := strconv.ParseFloat(prices[i], 64)
		if err != nil {
			return domain.MarketRecord{}, false
		}
		outcomes = append(outcomes, domain.Outcome{
			Name:    name,
			Price:   price,
			Percent: int(math.Round(price * 100)),
			Color:   outcomeColor(i),
		})
	}

	volume, _ := strconv.ParseFloat(m.Volume, 64)
	liquidity, _ := strconv.ParseFloat(m.Liquidity, 64)

	return domain.MarketRecord{
		Platform:  domain.PlatformPolymarket,
		ID:        "polymarket:" + m.ID,
		Title:     m.Question,
		Outcomes:  outcomes,
		Volume:    volume,
		Liquidity: liquidity,
		Link:      "https://polymarket.com/event/" + m.Slug,
		EventDate: eventDate(m.GameStartTime, m.EndDateISO),
	}, true
}

// decodeStringArray parses Gamma's doubly-encoded arrays ("[\"Yes\",\"No\"]").
func decodeStringArray(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// eventDate prefers the game start over market expiry; both are ISO
// timestamps whose date portion is all the signature needs.
func eventDate(gameStart, endDate string) string {
	for _, s := range []string{gameStart, endDate} {
		if len(s) >= 10 {
			return s[:10]
		}
	}
	return ""
}

func outcomeColor(i int) string {
	switch i {
	case 0:
		return "green"
	case 1:
		return "red"
	default:
		return "gray"
	}
}
