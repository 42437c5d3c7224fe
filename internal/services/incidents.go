package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/models"
	"github.com/noble-it/hub/internal/store"
)

type CreateIncidentInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type IncidentService struct {
	store    *store.Store
	notifier IncidentNotifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewIncidentService(s *store.Store, notifier IncidentNotifier, logger *slog.Logger) *IncidentService {
	return &IncidentService{
		store:    s,
		notifier: notifier,
		logger:   loggerOrDefault(logger),
		now:      time.Now,
	}
}

func (s *IncidentService) List(ctx context.Context) ([]models.Incident, error) {
	return s.store.ListIncidents(ctx)
}

// Create opens a platform-wide incident starting now.
func (s *IncidentService) Create(ctx context.Context, input CreateIncidentInput) (*models.Incident, error) {
	input.Title = cleanText(input.Title)
	input.Description = cleanText(input.Description)
	input.Impact = cleanText(input.Impact)

	if input.Title == "" {
		return nil, apperrors.Invalid("title", "Incident title required")
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	incident := &models.Incident{
		Title:       input.Title,
		Description: input.Description,
		Impact:      input.Impact,
		StartedAt:   s.now().UTC(),
	}
	if err := s.store.CreateIncident(ctx, incident); err != nil {
		return nil, err
	}

	s.logger.Info("incident opened", "incident_id", incident.ID, "title", incident.Title)
	s.notify(ctx, incident, false)

	return incident, nil
}

// Resolve marks the incident resolved now and appends incident.resolved to
// the timeline of every client the incident was opened against. Resolving an
// already resolved incident returns it unchanged and sends no notification.
func (s *IncidentService) Resolve(ctx context.Context, id uint) (*models.Incident, error) {
	var (
		incident *models.Incident
		changed  bool
	)

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		var err error
		if incident, changed, err = tx.ResolveIncident(ctx, id, s.now().UTC()); err != nil || !changed {
			return err
		}

		openings, err := tx.IncidentOpenings(ctx, id)
		if err != nil {
			return err
		}

		for _, opened := range openings {
			if err := tx.AppendEvent(ctx, &models.TimelineEvent{
				ClientID:   opened.ClientID,
				ProjectID:  opened.ProjectID,
				IncidentID: &incident.ID,
				Type:       models.EventIncidentResolved,
				Title:      "Incident resolved: " + incident.Title,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.logger.Info("incident resolved", "incident_id", incident.ID)
		s.notify(ctx, incident, true)
	}

	return incident, nil
}

func (s *IncidentService) notify(ctx context.Context, incident *models.Incident, resolved bool) {
	if s.notifier == nil {
		return
	}

	var err error
	if resolved {
		err = s.notifier.IncidentResolved(ctx, *incident)
	} else {
		err = s.notifier.IncidentOpened(ctx, *incident)
	}
	if err != nil {
		s.logger.Warn("incident notification failed", "incident_id", incident.ID, "resolved", resolved, "error", err)
	}
}
