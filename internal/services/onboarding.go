package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/metrics"
	"github.com/noble-it/hub/internal/models"
	"github.com/noble-it/hub/internal/store"
)

const (
	OnboardingTicketSubject = "Onboarding"
	OnboardingTicketMessage = "Welcome, initial setup ticket created"
)

type OnboardingClient struct {
	Name    string `json:"name" validate:"required,max=200"`
	Website string `json:"website" validate:"omitempty,url"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

type OnboardingProject struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Link        string `json:"link" validate:"omitempty,url"`
}

type OnboardingIncident struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	StartedAt   string `json:"startedAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type OnboardingRequest struct {
	Client                 OnboardingClient    `json:"client"`
	Project                *OnboardingProject  `json:"project" validate:"omitempty"`
	Incident               *OnboardingIncident `json:"incident" validate:"omitempty"`
	CreateUptimeMonitor    bool                `json:"createUptimeMonitor"`
	CreateOnboardingTicket bool                `json:"createOnboardingTicket"`
}

type MonitorResult struct {
	Requested bool   `json:"requested"`
	Created   bool   `json:"created"`
	MonitorID string `json:"monitorId,omitempty"`
}

type OnboardingResult struct {
	OK       bool                   `json:"ok"`
	Client   *models.Client         `json:"client"`
	Project  *models.Project        `json:"project"`
	Incident *models.Incident       `json:"incident"`
	Ticket   *models.Ticket         `json:"ticket"`
	Timeline []models.TimelineEvent `json:"timeline"`
	Monitor  *MonitorResult         `json:"monitor,omitempty"`
}

// OnboardingService creates a client and its optional project, incident and
// ticket in one transaction, then best-effort registers an uptime monitor.
type OnboardingService struct {
	store    *store.Store
	monitors *MonitorService
	notifier IncidentNotifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewOnboardingService(s *store.Store, monitors *MonitorService, notifier IncidentNotifier, m *metrics.Metrics, logger *slog.Logger) *OnboardingService {
	return &OnboardingService{
		store:    s,
		monitors: monitors,
		notifier: notifier,
		metrics:  m,
		logger:   loggerOrDefault(logger),
		now:      time.Now,
	}
}

// normalize sanitizes free text in place so validation sees what will be stored.
func (r *OnboardingRequest) normalize() {
	r.Client.Name = cleanText(r.Client.Name)
	r.Client.Website = strings.TrimSpace(r.Client.Website)
	r.Client.LogoURL = strings.TrimSpace(r.Client.LogoURL)

	if r.Project != nil {
		r.Project.Title = cleanText(r.Project.Title)
		r.Project.Description = cleanText(r.Project.Description)
		r.Project.Link = strings.TrimSpace(r.Project.Link)
	}

	if r.Incident != nil {
		r.Incident.Title = cleanText(r.Incident.Title)
		r.Incident.Description = cleanText(r.Incident.Description)
		r.Incident.Impact = cleanText(r.Incident.Impact)
		r.Incident.StartedAt = strings.TrimSpace(r.Incident.StartedAt)
	}
}

// Validate normalizes the request and reports the first violation. It never
// touches the store.
func (r *OnboardingRequest) Validate() error {
	r.normalize()
	return validateStruct(r)
}

func (o *OnboardingService) Onboard(ctx context.Context, req OnboardingRequest) (*OnboardingResult, error) {
	if err := req.Validate(); err != nil {
		o.metrics.Onboarding(metrics.ResultInvalid)
		return nil, err
	}

	var startedAt time.Time
	if req.Incident != nil {
		startedAt = o.now().UTC()
		if req.Incident.StartedAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.Incident.StartedAt)
			if err != nil {
				o.metrics.Onboarding(metrics.ResultInvalid)
				return nil, apperrors.Invalid("incident.startedAt", "must be an RFC 3339 timestamp")
			}
			startedAt = parsed.UTC()
		}
	}

	result := &OnboardingResult{Timeline: []models.TimelineEvent{}}

	err := o.store.Transaction(ctx, func(tx *store.Store) error {
		appendEvent := func(event models.TimelineEvent) error {
			if err := tx.AppendEvent(ctx, &event); err != nil {
				return err
			}
			result.Timeline = append(result.Timeline, event)
			return nil
		}

		client := &models.Client{
			Name:    req.Client.Name,
			Website: req.Client.Website,
			LogoURL: req.Client.LogoURL,
		}
		if err := tx.CreateClient(ctx, client); err != nil {
			return err
		}
		result.Client = client

		if err := appendEvent(models.TimelineEvent{
			ClientID: client.ID,
			Type:     models.EventClientCreated,
			Title:    "Client created: " + client.Name,
			Details:  client.Website,
		}); err != nil {
			return err
		}

		var projectID *uint
		if req.Project != nil {
			project := &models.Project{
				Title:       req.Project.Title,
				Description: req.Project.Description,
				Link:        req.Project.Link,
				ClientID:    client.ID,
			}
			if err := tx.CreateProject(ctx, project); err != nil {
				return err
			}
			result.Project = project
			projectID = &project.ID

			if err := appendEvent(models.TimelineEvent{
				ClientID:  client.ID,
				ProjectID: projectID,
				Type:      models.EventProjectCreated,
				Title:     "Project created: " + project.Title,
				Details:   project.Description,
			}); err != nil {
				return err
			}

			traffic := &models.TrafficLog{
				ClientID:  client.ID,
				ProjectID: projectID,
				Source:    models.TrafficSourceOnboarding,
				Hits:      1,
			}
			if err := tx.AddTraffic(ctx, traffic); err != nil {
				return err
			}

			if err := appendEvent(models.TimelineEvent{
				ClientID:  client.ID,
				ProjectID: projectID,
				Type:      models.EventTrafficSeeded,
				Title:     "Traffic baseline recorded",
				Details:   fmt.Sprintf("source=%s hits=%d", traffic.Source, traffic.Hits),
				Metadata:  metadata(map[string]interface{}{"trafficLogId": traffic.ID, "source": traffic.Source, "hits": traffic.Hits}),
			}); err != nil {
				return err
			}
		}

		if req.Incident != nil {
			incident := &models.Incident{
				Title:       req.Incident.Title,
				Description: req.Incident.Description,
				Impact:      req.Incident.Impact,
				StartedAt:   startedAt,
			}
			if err := tx.CreateIncident(ctx, incident); err != nil {
				return err
			}
			result.Incident = incident

			if err := appendEvent(models.TimelineEvent{
				ClientID:   client.ID,
				ProjectID:  projectID,
				IncidentID: &incident.ID,
				Type:       models.EventIncidentOpened,
				Title:      "Incident opened: " + incident.Title,
				Details:    incident.Description,
			}); err != nil {
				return err
			}
		}

		if req.CreateOnboardingTicket {
			ticket := &models.Ticket{
				ClientID:  client.ID,
				ProjectID: projectID,
				Subject:   OnboardingTicketSubject,
				Message:   OnboardingTicketMessage,
			}
			if err := tx.CreateTicket(ctx, ticket); err != nil {
				return err
			}
			result.Ticket = ticket

			if err := appendEvent(models.TimelineEvent{
				ClientID:  client.ID,
				ProjectID: projectID,
				Type:      models.EventTicketCreated,
				Title:     "Onboarding ticket",
				Details:   "Auto created",
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		o.metrics.Onboarding(metrics.ResultError)
		o.logger.Error("onboarding transaction rolled back", "client", req.Client.Name, "error", err)
		return nil, apperrors.Persistence("Failed to complete onboarding", err)
	}

	result.OK = true
	o.metrics.Onboarding(metrics.ResultOK)
	o.logger.Info("client onboarded", "client_id", result.Client.ID, "events", len(result.Timeline))

	if req.CreateUptimeMonitor {
		result.Monitor = &MonitorResult{Requested: true}

		monitorID, event := o.monitors.Attach(ctx, result.Client)
		if monitorID != "" {
			result.Monitor.Created = true
			result.Monitor.MonitorID = monitorID
		}
		if event != nil {
			result.Timeline = append(result.Timeline, *event)
		}
	}

	if result.Incident != nil && o.notifier != nil {
		if err := o.notifier.IncidentOpened(ctx, *result.Incident); err != nil {
			o.logger.Warn("incident notification failed", "incident_id", result.Incident.ID, "error", err)
		}
	}

	return result, nil
}
