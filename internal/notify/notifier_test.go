package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

type stubSender struct {
	name  string
	err   error
	calls int
	last  []domain.Opportunity
}

func (s *stubSender) SendOpportunities(ctx context.Context, opps []domain.Opportunity) error {
	s.calls++
	s.last = opps
	return s.err
}

func (s *stubSender) Name() string { return s.name }

func sampleOpportunities(n int) []domain.Opportunity {
	market := domain.MarketRecord{Outcomes: []domain.Outcome{{Name: "Yes"}, {Name: "No"}}}
	opp := domain.Opportunity{
		Title:    "Ravens vs Packers",
		BestBuy:  domain.Leg{Market: market, OutcomeIndex: 1, Price: 0.45, Platform: domain.PlatformKalshi},
		BestSell: domain.Leg{Market: market, OutcomeIndex: 0, Price: 0.58, Platform: domain.PlatformPolymarket},
		Spread:   13.0,
		ROI:      14.9,
	}
	opps := make([]domain.Opportunity, n)
	for i := range opps {
		opps[i] = opp
	}
	return opps
}

func TestAlertEventFilter(t *testing.T) {
	ctx := context.Background()
	opps := sampleOpportunities(1)

	allowed := &stubSender{name: "telegram"}
	n := NewNotifier([]Sender{allowed}, []string{"opportunity"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := n.AlertOpportunities(ctx, opps); err != nil {
		t.Fatalf("AlertOpportunities: %v", err)
	}
	if allowed.calls != 1 {
		t.Errorf("calls = %d, want delivery when event allowed", allowed.calls)
	}

	// Operator only wants some other event type.
	filtered := &stubSender{name: "telegram"}
	n = NewNotifier([]Sender{filtered}, []string{"scan_error"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := n.AlertOpportunities(ctx, opps); err != nil {
		t.Fatalf("AlertOpportunities filtered: %v", err)
	}
	if filtered.calls != 0 {
		t.Error("filtered event was delivered")
	}
}

func TestAlertEmptyEventsAllowsAll(t *testing.T) {
	sender := &stubSender{name: "discord"}
	n := NewNotifier([]Sender{sender}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := n.AlertOpportunities(context.Background(), sampleOpportunities(2)); err != nil {
		t.Fatalf("AlertOpportunities: %v", err)
	}
	if sender.calls != 1 || len(sender.last) != 2 {
		t.Errorf("calls = %d, opps = %d, want unfiltered delivery", sender.calls, len(sender.last))
	}
}

func TestAlertNothingToReport(t *testing.T) {
	sender := &stubSender{name: "discord"}
	n := NewNotifier([]Sender{sender}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := n.AlertOpportunities(context.Background(), nil); err != nil {
		t.Fatalf("AlertOpportunities: %v", err)
	}
	if sender.calls != 0 {
		t.Error("empty scan produced an alert")
	}
}

func TestAlertPartialFailure(t *testing.T) {
	broken := &stubSender{name: "telegram", err: errors.New("403")}
	working := &stubSender{name: "discord"}
	n := NewNotifier([]Sender{broken, working}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := n.AlertOpportunities(context.Background(), sampleOpportunities(1))
	if err == nil || !strings.Contains(err.Error(), "telegram") {
		t.Errorf("error = %v, want the failing sender named", err)
	}
	if working.calls != 1 {
		t.Error("one sender failing should not block the others")
	}
}

func TestTelegramSenderFormatsMarkdown(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/bottok123/sendMessage") {
			t.Errorf("path = %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewTelegramSender("tok123", "chat42")
	sender.api = srv.URL

	if err := sender.SendOpportunities(context.Background(), sampleOpportunities(7)); err != nil {
		t.Fatalf("SendOpportunities: %v", err)
	}

	if got["chat_id"] != "chat42" || got["parse_mode"] != "Markdown" {
		t.Errorf("payload = %v", got)
	}
	text := got["text"]
	for _, want := range []string{
		"*7 arbitrage opportunities found*",
		"buy kalshi No @ 0.45",
		"sell polymarket Yes @ 0.58",
		"... and 2 more",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
	if rows := strings.Count(text, "Ravens vs Packers"); rows != 5 {
		t.Errorf("listed %d rows, want capped at 5", rows)
	}
}

func TestDiscordSenderBuildsEmbed(t *testing.T) {
	var got struct {
		Embeds []discordEmbed `json:"embeds"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender := NewDiscordSender(srv.URL)
	if err := sender.SendOpportunities(context.Background(), sampleOpportunities(7)); err != nil {
		t.Fatalf("SendOpportunities: %v", err)
	}

	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	embed := got.Embeds[0]
	if embed.Title != "7 arbitrage opportunities found" {
		t.Errorf("title = %q", embed.Title)
	}
	if len(embed.Fields) != 5 {
		t.Errorf("fields = %d, want capped at 5", len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[0].Value, "spread 13.0pp") {
		t.Errorf("field value = %q", embed.Fields[0].Value)
	}
	if embed.Footer == nil || embed.Footer.Text != "and 2 more" {
		t.Errorf("footer = %+v, want overflow summarized", embed.Footer)
	}
}

func TestDiscordSenderRejectedWebhook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Invalid Webhook Token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewDiscordSender(srv.URL)
	err := sender.SendOpportunities(context.Background(), sampleOpportunities(1))
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want status surfaced", err)
	}
}
