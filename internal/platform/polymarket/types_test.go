package polymarket

import (
	"encoding/json"
	"testing"
)

func TestToMarketRecord(t *testing.T) {
	m := APIMarket{
		ID:            "517310",
		Question:      "Ravens vs. Packers",
		Slug:          "nfl-bal-gb-2025-09-25",
		Outcomes:      `["Ravens","Packers"]`,
		OutcomePrices: `["0.42","0.58"]`,
		Volume:        "91234.5",
		Liquidity:     "15000",
		GameStartTime: "2025-09-25T20:15:00Z",
		EndDateISO:    "2025-09-26",
	}

	rec, ok := m.ToMarketRecord()
	if !ok {
		t.Fatal("well-formed market rejected")
	}
	if rec.ID != "polymarket:517310" {
		t.Errorf("ID = %q", rec.ID)
	}
	if len(rec.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(rec.Outcomes))
	}
	if rec.Outcomes[0].Name != "Ravens" || rec.Outcomes[0].Price != 0.42 || rec.Outcomes[0].Percent != 42 {
		t.Errorf("first outcome = %+v", rec.Outcomes[0])
	}
	if rec.Volume != 91234.5 || rec.Liquidity != 15000 {
		t.Errorf("aggregates = %v / %v", rec.Volume, rec.Liquidity)
	}
	// Game start beats market expiry for the event date.
	if rec.EventDate != "2025-09-25" {
		t.Errorf("EventDate = %q, want 2025-09-25", rec.EventDate)
	}
	if rec.Link != "https://polymarket.com/event/nfl-bal-gb-2025-09-25" {
		t.Errorf("Link = %q", rec.Link)
	}
	if !rec.Valid() {
		t.Error("record should pass validation")
	}
}

func TestToMarketRecordMalformed(t *testing.T) {
	tests := []struct {
		name             string
		outcomes, prices string
	}{
		{"empty arrays", `[]`, `[]`},
		{"length mismatch", `["Yes","No"]`, `["0.5"]`},
		{"not json", `Yes,No`, `0.5,0.5`},
		{"unparsable price", `["Yes","No"]`, `["0.5","n/a"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := APIMarket{ID: "1", Question: "Some market", Outcomes: tt.outcomes, OutcomePrices: tt.prices}
			if _, ok := m.ToMarketRecord(); ok {
				t.Error("expected malformed market to be rejected")
			}
		})
	}
}

func TestFlexBool(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`"TRUE"`, true},
		{`"false"`, false},
		{`"1"`, true},
	}
	for _, tt := range tests {
		var f flexBool
		if err := json.Unmarshal([]byte(tt.raw), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		if bool(f) != tt.want {
			t.Errorf("flexBool(%s) = %v, want %v", tt.raw, f, tt.want)
		}
	}
}

func TestFlattenEventSkipsInactive(t *testing.T) {
	mk := APIMarket{ID: "1", Question: "Ravens vs. Packers", Outcomes: `["Yes","No"]`, OutcomePrices: `["0.4","0.6"]`}

	active := APIEvent{Active: true, Markets: []APIMarket{mk}}
	if got := flattenEvent(&active); len(got) != 1 {
		t.Errorf("active event flattened to %d records, want 1", len(got))
	}

	closed := APIEvent{Active: true, Closed: true, Markets: []APIMarket{mk}}
	if got := flattenEvent(&closed); got != nil {
		t.Errorf("closed event flattened to %v, want nil", got)
	}

	inactive := APIEvent{Active: false, Markets: []APIMarket{mk}}
	if got := flattenEvent(&inactive); got != nil {
		t.Errorf("inactive event flattened to %v, want nil", got)
	}
}
