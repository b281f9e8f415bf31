package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

const telegramAPI = "https://api.telegram.org"

// TelegramSender posts opportunity alerts to a chat through the Bot API,
// rendered as Markdown with the headline in bold.
type TelegramSender struct {
	api    string
	token  string
	chatID string
	client *http.Client
}

// NewTelegramSender creates a TelegramSender for the given bot token and
// chat ID.
func NewTelegramSender(token, chatID string) *TelegramSender {
	return &TelegramSender{
		api:    telegramAPI,
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendOpportunities renders the scan's findings as one Markdown message and
// posts it via sendMessage.
func (t *TelegramSender) SendOpportunities(ctx context.Context, opps []domain.Opportunity) error {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", headline(len(opps)))

	shown, more := capRows(opps)
	for _, o := range shown {
		fmt.Fprintf(&b, "%s\n  %s\n", o.Title, legLine(o))
	}
	if more > 0 {
		fmt.Fprintf(&b, "... and %d more\n", more)
	}

	payload := map[string]string{
		"chat_id":    t.chatID,
		"text":       b.String(),
		"parse_mode": "Markdown",
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.api, t.token)
	return postJSON(ctx, t.client, t.Name(), url, payload)
}

// Name returns the sender identifier.
func (t *TelegramSender) Name() string {
	return "telegram"
}
