package store

import (
	"context"
	"time"

	"github.com/noble-it/hub/internal/models"
)

func (s *Store) CreateIncident(ctx context.Context, incident *models.Incident) error {
	return translate(s.conn(ctx).Create(incident).Error, "", "Failed to create incident")
}

func (s *Store) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	incidents := []models.Incident{}

	err := s.conn(ctx).Order("started_at DESC").Order("id DESC").Find(&incidents).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch incidents")
	}

	return incidents, nil
}

func (s *Store) GetIncident(ctx context.Context, id uint) (*models.Incident, error) {
	var incident models.Incident

	if err := s.conn(ctx).First(&incident, id).Error; err != nil {
		return nil, translate(err, "Incident not found", "Failed to fetch incident")
	}

	return &incident, nil
}

// ResolveIncident sets resolved_at only while it is still null. The returned
// flag reports whether this call performed the transition; a second call
// leaves the original timestamp untouched.
func (s *Store) ResolveIncident(ctx context.Context, id uint, at time.Time) (*models.Incident, bool, error) {
	res := s.conn(ctx).Model(&models.Incident{}).
		Where("id = ? AND resolved_at IS NULL", id).
		Update("resolved_at", at)
	if res.Error != nil {
		return nil, false, translate(res.Error, "", "Failed to update incident")
	}

	incident, err := s.GetIncident(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return incident, res.RowsAffected > 0, nil
}

// IncidentsOverlapping returns incidents whose [started_at, resolved_at or
// now] interval intersects [from, to].
func (s *Store) IncidentsOverlapping(ctx context.Context, from, to time.Time) ([]models.Incident, error) {
	incidents := []models.Incident{}

	err := s.conn(ctx).
		Where("started_at <= ?", to).
		Where("resolved_at IS NULL OR resolved_at >= ?", from).
		Order("started_at ASC").
		Find(&incidents).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch incidents")
	}

	return incidents, nil
}

// IncidentStartTimes returns every incident start, oldest first.
func (s *Store) IncidentStartTimes(ctx context.Context) ([]time.Time, error) {
	var starts []time.Time

	err := s.conn(ctx).Model(&models.Incident{}).Order("started_at ASC").Pluck("started_at", &starts).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch incidents")
	}

	return starts, nil
}
