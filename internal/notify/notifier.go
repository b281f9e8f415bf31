// Package notify pushes scan findings to operator channels. Each sender owns
// its channel's wire format, so Discord gets embeds and Telegram gets
// Markdown rather than one lowest-common-denominator string.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// EventOpportunity is the event type opportunity alerts are filtered under.
const EventOpportunity = "opportunity"

// Sender delivers one scan's findings over a single channel.
type Sender interface {
	SendOpportunities(ctx context.Context, opps []domain.Opportunity) error
	// Name identifies the channel in logs and dispatch errors.
	Name() string
}

// Notifier fans a scan's findings out to every configured sender. The events
// list from config selects which alert types are delivered; an empty list
// delivers everything.
type Notifier struct {
	senders []Sender
	events  map[string]bool
	logger  *slog.Logger
}

// NewNotifier creates a Notifier over the given senders and allowed events.
func NewNotifier(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(events))
	for _, e := range events {
		allowed[strings.TrimSpace(e)] = true
	}
	return &Notifier{
		senders: senders,
		events:  allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// AlertOpportunities delivers a scan's opportunity set to every sender,
// unless the operator filtered the opportunity event out. Failures are
// collected per sender; one broken webhook never blocks the rest.
func (n *Notifier) AlertOpportunities(ctx context.Context, opps []domain.Opportunity) error {
	if len(opps) == 0 || len(n.senders) == 0 {
		return nil
	}
	if len(n.events) > 0 && !n.events[EventOpportunity] {
		n.logger.DebugContext(ctx, "opportunity alerts filtered out")
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.SendOpportunities(ctx, opps); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "alert sent",
			slog.String("sender", s.Name()),
			slog.Int("opportunities", len(opps)),
		)
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}
