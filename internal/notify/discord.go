package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// discordGreen colors opportunity embeds; alerts here are always good news.
const discordGreen = 0x2ecc71

// DiscordSender posts opportunity alerts to a Discord webhook as a single
// embed, one field per opportunity.
type DiscordSender struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordSender creates a DiscordSender for the given webhook URL.
func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type discordEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color"`
	Fields []discordField `json:"fields,omitempty"`
	Footer *discordFooter `json:"footer,omitempty"`
}

type discordField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// SendOpportunities posts the scan's findings to the webhook. Discord
// answers 204 No Content on success.
func (d *DiscordSender) SendOpportunities(ctx context.Context, opps []domain.Opportunity) error {
	embed := discordEmbed{
		Title: headline(len(opps)),
		Color: discordGreen,
	}

	shown, more := capRows(opps)
	for _, o := range shown {
		embed.Fields = append(embed.Fields, discordField{
			Name:  o.Title,
			Value: legLine(o),
		})
	}
	if more > 0 {
		embed.Footer = &discordFooter{Text: fmt.Sprintf("and %d more", more)}
	}

	payload := map[string]any{"embeds": []discordEmbed{embed}}
	return postJSON(ctx, d.client, d.Name(), d.webhookURL, payload)
}

// Name returns the sender identifier.
func (d *DiscordSender) Name() string {
	return "discord"
}
