package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/noble-it/hub/internal/models"
	"github.com/noble-it/hub/internal/store"
	"github.com/noble-it/hub/internal/uptime"
)

// MonitorService registers uptime monitors for already-committed clients.
// Registration is an enhancement: every failure is logged and absorbed.
type MonitorService struct {
	store   *store.Store
	monitor MonitorClient
	logger  *slog.Logger
}

func NewMonitorService(s *store.Store, monitor MonitorClient, logger *slog.Logger) *MonitorService {
	return &MonitorService{store: s, monitor: monitor, logger: loggerOrDefault(logger)}
}

func (m *MonitorService) Enabled() bool {
	return m != nil && m.monitor != nil && m.monitor.Enabled()
}

// Attach registers a monitor for client.Website. On success the client row
// gets its monitorId and a monitor.created event is appended; both writes are
// outside any onboarding transaction. It returns the stored monitor id, or ""
// when none was stored, and the event, which is nil if appending it failed.
func (m *MonitorService) Attach(ctx context.Context, client *models.Client) (string, *models.TimelineEvent) {
	if m == nil || client == nil || client.Website == "" {
		return "", nil
	}

	if !m.Enabled() {
		m.logger.Debug("uptime monitoring disabled, skipping monitor registration", "client_id", client.ID)
		return "", nil
	}

	monitorID, err := m.monitor.RegisterMonitor(ctx, client.Website, uptime.FriendlyName(client.Name, client.Website))
	if err != nil {
		if !errors.Is(err, uptime.ErrDisabled) {
			m.logger.Warn("uptime monitor registration failed", "client_id", client.ID, "website", client.Website, "error", err)
		}
		return "", nil
	}

	if err := m.store.SetClientMonitor(ctx, client.ID, monitorID); err != nil {
		m.logger.Error("failed to store monitor id", "client_id", client.ID, "monitor_id", monitorID, "error", err)
		return "", nil
	}
	client.MonitorID = &monitorID

	m.logger.Info("uptime monitor registered", "client_id", client.ID, "monitor_id", monitorID)

	event := &models.TimelineEvent{
		ClientID: client.ID,
		Type:     models.EventMonitorCreated,
		Title:    "Uptime monitor added",
		Details:  monitorID,
		Metadata: metadata(map[string]interface{}{"provider": "uptimerobot", "monitorId": monitorID}),
	}

	if err := m.store.AppendEvent(ctx, event); err != nil {
		m.logger.Error("failed to record monitor.created event", "client_id", client.ID, "monitor_id", monitorID, "error", err)
		return monitorID, nil
	}

	return monitorID, event
}

// Backfill attaches monitors to up to limit clients that have a website but
// no monitor yet, returning how many were attached.
func (m *MonitorService) Backfill(ctx context.Context, limit int) (int, error) {
	if !m.Enabled() {
		return 0, nil
	}

	clients, err := m.store.ClientsMissingMonitor(ctx, limit)
	if err != nil {
		return 0, err
	}

	attached := 0
	for i := range clients {
		if ctx.Err() != nil {
			break
		}
		if monitorID, _ := m.Attach(ctx, &clients[i]); monitorID != "" {
			attached++
		}
	}

	return attached, nil
}
