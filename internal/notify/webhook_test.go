package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/noble-it/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (c *capture) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)

		c.mu.Lock()
		c.bodies = append(c.bodies, raw)
		c.mu.Unlock()

		w.WriteHeader(status)
	}
}

func sampleIncident() models.Incident {
	started := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	resolved := started.Add(90 * time.Minute)

	incident := models.Incident{Title: "Checkout failing", Description: "500s on /checkout", StartedAt: started, ResolvedAt: &resolved}
	incident.ID = 7
	return incident
}

func TestIncidentOpenedPostsToBothChannels(t *testing.T) {
	discord, slack := &capture{}, &capture{}
	discordServer := httptest.NewServer(discord.handler(http.StatusNoContent))
	slackServer := httptest.NewServer(slack.handler(http.StatusOK))
	t.Cleanup(discordServer.Close)
	t.Cleanup(slackServer.Close)

	n := NewNotifier(discordServer.URL, slackServer.URL, time.Second, nil)
	require.NoError(t, n.IncidentOpened(context.Background(), sampleIncident()))

	require.Len(t, discord.bodies, 1)
	var discordBody DiscordWebhookRequest
	require.NoError(t, json.Unmarshal(discord.bodies[0], &discordBody))
	require.Len(t, discordBody.Embeds, 1)
	assert.Equal(t, ColorRed, discordBody.Embeds[0].Color)
	assert.Contains(t, discordBody.Embeds[0].Description, "Checkout failing")

	require.Len(t, slack.bodies, 1)
	var slackBody SlackWebhookRequest
	require.NoError(t, json.Unmarshal(slack.bodies[0], &slackBody))
	require.Len(t, slackBody.Attachments, 1)
	assert.Equal(t, "danger", slackBody.Attachments[0].Color)
}

func TestIncidentResolvedIncludesDuration(t *testing.T) {
	slack := &capture{}
	server := httptest.NewServer(slack.handler(http.StatusOK))
	t.Cleanup(server.Close)

	n := NewNotifier("", server.URL, time.Second, nil)
	require.NoError(t, n.IncidentResolved(context.Background(), sampleIncident()))

	var body SlackWebhookRequest
	require.Len(t, slack.bodies, 1)
	require.NoError(t, json.Unmarshal(slack.bodies[0], &body))

	var duration string
	for _, field := range body.Attachments[0].Fields {
		if field.Title == "Duration" {
			duration = field.Value
		}
	}
	assert.Equal(t, "1h30m0s", duration)
}

func TestWebhookFailureIsReported(t *testing.T) {
	server := httptest.NewServer((&capture{}).handler(http.StatusInternalServerError))
	t.Cleanup(server.Close)

	n := NewNotifier(server.URL, "", time.Second, nil)
	err := n.IncidentOpened(context.Background(), sampleIncident())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord")
}

func TestDisabledNotifierIsNoop(t *testing.T) {
	n := NewNotifier("", "", time.Second, nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.IncidentOpened(context.Background(), sampleIncident()))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.IncidentResolved(context.Background(), sampleIncident()))
}
