package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/noble-it/hub/internal/metrics"
	"github.com/noble-it/hub/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorRed   = 16711680 // #FF0000 - Incident opened
	ColorGreen = 65280    // #00FF00 - Incident resolved

	Username = "Noble IT Hub"

	timeLayout = "2006-01-02 15:04:05 UTC"
)

// Notifier posts incident updates to the configured chat webhooks. A blank
// URL disables that channel.
type Notifier struct {
	discordURL string
	slackURL   string
	http       *http.Client
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewNotifier(discordURL, slackURL string, timeout time.Duration, m *metrics.Metrics) *Notifier {
	return &Notifier{
		discordURL: discordURL,
		slackURL:   slackURL,
		http:       &http.Client{Timeout: timeout},
		metrics:    m,
		now:        time.Now,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && (n.discordURL != "" || n.slackURL != "")
}

// IncidentOpened tries every configured channel and joins their errors.
func (n *Notifier) IncidentOpened(ctx context.Context, incident models.Incident) error {
	if !n.Enabled() {
		return nil
	}

	var errs []error

	if n.discordURL != "" {
		err := n.send(ctx, n.discordURL, n.discordOpened(incident))
		n.metrics.Notification("discord", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}

	if n.slackURL != "" {
		err := n.send(ctx, n.slackURL, n.slackOpened(incident))
		n.metrics.Notification("slack", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("slack: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (n *Notifier) IncidentResolved(ctx context.Context, incident models.Incident) error {
	if !n.Enabled() {
		return nil
	}

	var errs []error

	if n.discordURL != "" {
		err := n.send(ctx, n.discordURL, n.discordResolved(incident))
		n.metrics.Notification("discord", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}

	if n.slackURL != "" {
		err := n.send(ctx, n.slackURL, n.slackResolved(incident))
		n.metrics.Notification("slack", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("slack: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (n *Notifier) discordOpened(incident models.Incident) DiscordWebhookRequest {
	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "🚨 **INCIDENT OPENED**",
				Description: fmt.Sprintf("**%s** was opened and requires attention.", incident.Title),
				Color:       ColorRed,
				Fields: []DiscordWebhookField{
					{Name: "📝 Incident", Value: incident.Title, Inline: false},
					{Name: "📋 Description", Value: orUnknown(incident.Description), Inline: false},
					{Name: "⚠️ Impact", Value: orUnknown(incident.Impact), Inline: true},
					{Name: "⏰ Started At", Value: incident.StartedAt.UTC().Format(timeLayout), Inline: true},
				},
				Footer:    &DiscordFooter{Text: fmt.Sprintf("Incident #%d | %s", incident.ID, Username)},
				Timestamp: n.now().Format(time.RFC3339),
			},
		},
	}
}

func (n *Notifier) discordResolved(incident models.Incident) DiscordWebhookRequest {
	resolvedAt, duration := resolution(incident)

	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "✅ **INCIDENT RESOLVED**",
				Description: fmt.Sprintf("**%s** has been resolved.", incident.Title),
				Color:       ColorGreen,
				Fields: []DiscordWebhookField{
					{Name: "📝 Incident", Value: incident.Title, Inline: false},
					{Name: "⏰ Started At", Value: incident.StartedAt.UTC().Format(timeLayout), Inline: true},
					{Name: "🏁 Resolved At", Value: resolvedAt, Inline: true},
					{Name: "⏱️ Duration", Value: duration, Inline: true},
				},
				Footer:    &DiscordFooter{Text: fmt.Sprintf("Incident #%d | %s", incident.ID, Username)},
				Timestamp: n.now().Format(time.RFC3339),
			},
		},
	}
}

func (n *Notifier) slackOpened(incident models.Incident) SlackWebhookRequest {
	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":rotating_light:",
		Text:      ":rotating_light: *INCIDENT OPENED*",
		Attachments: []SlackAttachment{
			{
				Color: "danger",
				Title: incident.Title,
				Text:  incident.Description,
				Fields: []SlackField{
					{Title: "Impact", Value: orUnknown(incident.Impact), Short: true},
					{Title: "Started At", Value: incident.StartedAt.UTC().Format(timeLayout), Short: true},
				},
				Footer:    fmt.Sprintf("Incident #%d", incident.ID),
				Timestamp: n.now().Unix(),
			},
		},
	}
}

func (n *Notifier) slackResolved(incident models.Incident) SlackWebhookRequest {
	resolvedAt, duration := resolution(incident)

	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":white_check_mark:",
		Text:      ":white_check_mark: *INCIDENT RESOLVED*",
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: incident.Title,
				Text:  "The incident has been resolved.",
				Fields: []SlackField{
					{Title: "Started At", Value: incident.StartedAt.UTC().Format(timeLayout), Short: true},
					{Title: "Resolved At", Value: resolvedAt, Short: true},
					{Title: "Duration", Value: duration, Short: true},
				},
				Footer:    fmt.Sprintf("Incident #%d", incident.ID),
				Timestamp: n.now().Unix(),
			},
		},
	}
}

func resolution(incident models.Incident) (string, string) {
	if incident.ResolvedAt == nil {
		return "Unknown", "Unknown"
	}

	resolvedAt := incident.ResolvedAt.UTC().Format(timeLayout)
	duration := incident.ResolvedAt.Sub(incident.StartedAt).Round(time.Second).String()

	return resolvedAt, duration
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func (n *Notifier) send(ctx context.Context, webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
