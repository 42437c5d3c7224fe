package store

import (
	"context"
	"time"

	"github.com/noble-it/hub/internal/models"
)

func (s *Store) AppendEvent(ctx context.Context, event *models.TimelineEvent) error {
	return translate(s.conn(ctx).Create(event).Error, "", "Failed to record timeline event")
}

func (s *Store) ClientTimeline(ctx context.Context, clientID uint, limit int) ([]models.TimelineEvent, error) {
	events := []models.TimelineEvent{}

	err := s.conn(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch timeline")
	}

	return events, nil
}

// IncidentOpenings returns the incident.opened events that tie incidentID to
// clients, oldest first.
func (s *Store) IncidentOpenings(ctx context.Context, incidentID uint) ([]models.TimelineEvent, error) {
	events := []models.TimelineEvent{}

	err := s.conn(ctx).
		Where("incident_id = ? AND type = ?", incidentID, models.EventIncidentOpened).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch timeline")
	}

	return events, nil
}

func (s *Store) AddTraffic(ctx context.Context, entry *models.TrafficLog) error {
	return translate(s.conn(ctx).Create(entry).Error, "", "Failed to record traffic")
}

// TrafficSince returns traffic rows created at or after since.
func (s *Store) TrafficSince(ctx context.Context, since time.Time) ([]models.TrafficLog, error) {
	logs := []models.TrafficLog{}

	err := s.conn(ctx).Where("created_at >= ?", since).Order("created_at ASC").Find(&logs).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch traffic")
	}

	return logs, nil
}
