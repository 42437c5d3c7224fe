package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/models"
	"github.com/noble-it/hub/internal/store"
)

type CreateClientInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Website string `json:"website" validate:"omitempty,url"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

type CreateProjectInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Link        string `json:"link" validate:"omitempty,url"`
	ClientID    uint   `json:"clientId" validate:"required"`
}

type CreateTicketInput struct {
	ClientID  uint   `json:"clientId" validate:"required"`
	ProjectID *uint  `json:"projectId"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required"`
}

// RecordService handles the plain CRUD resources. Each create also appends
// the matching timeline event in the same transaction.
type RecordService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewRecordService(s *store.Store, logger *slog.Logger) *RecordService {
	return &RecordService{store: s, logger: loggerOrDefault(logger)}
}

func (r *RecordService) ListClients(ctx context.Context) ([]models.Client, error) {
	return r.store.ListClients(ctx)
}

func (r *RecordService) CreateClient(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	input.Name = cleanText(input.Name)
	input.Website = strings.TrimSpace(input.Website)
	input.LogoURL = strings.TrimSpace(input.LogoURL)

	if input.Name == "" {
		return nil, apperrors.Invalid("name", "Client name required")
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	client := &models.Client{Name: input.Name, Website: input.Website, LogoURL: input.LogoURL}

	err := r.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.CreateClient(ctx, client); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, &models.TimelineEvent{
			ClientID: client.ID,
			Type:     models.EventClientCreated,
			Title:    "Client created: " + client.Name,
			Details:  client.Website,
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("client created", "client_id", client.ID)

	return client, nil
}

func (r *RecordService) DeleteClient(ctx context.Context, id uint) error {
	if err := r.store.DeleteClient(ctx, id); err != nil {
		return err
	}

	r.logger.Info("client deleted", "client_id", id)

	return nil
}

func (r *RecordService) ClientTimeline(ctx context.Context, id uint, limit int) ([]models.TimelineEvent, error) {
	if _, err := r.store.GetClient(ctx, id); err != nil {
		return nil, err
	}

	return r.store.ClientTimeline(ctx, id, limit)
}

func (r *RecordService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return r.store.ListProjects(ctx)
}

func (r *RecordService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	input.Title = cleanText(input.Title)
	input.Description = cleanText(input.Description)
	input.Link = strings.TrimSpace(input.Link)

	if input.Title == "" || input.ClientID == 0 {
		return nil, apperrors.Invalid(missing(input.Title == "", "title", "clientId"), "Project title and clientId required")
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
		ClientID:    input.ClientID,
	}

	err := r.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.CreateProject(ctx, project); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, &models.TimelineEvent{
			ClientID:  project.ClientID,
			ProjectID: &project.ID,
			Type:      models.EventProjectCreated,
			Title:     "Project created: " + project.Title,
			Details:   project.Description,
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("project created", "project_id", project.ID, "client_id", project.ClientID)

	return project, nil
}

func (r *RecordService) DeleteProject(ctx context.Context, id uint) error {
	if err := r.store.DeleteProject(ctx, id); err != nil {
		return err
	}

	r.logger.Info("project deleted", "project_id", id)

	return nil
}

func (r *RecordService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return r.store.ListTickets(ctx)
}

func (r *RecordService) CreateTicket(ctx context.Context, input CreateTicketInput) (*models.Ticket, error) {
	input.Subject = cleanText(input.Subject)
	input.Message = cleanText(input.Message)

	if err := validateStruct(input); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		ClientID:  input.ClientID,
		ProjectID: input.ProjectID,
		Subject:   input.Subject,
		Message:   input.Message,
	}

	err := r.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.CreateTicket(ctx, ticket); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, &models.TimelineEvent{
			ClientID:  ticket.ClientID,
			ProjectID: ticket.ProjectID,
			Type:      models.EventTicketCreated,
			Title:     "Ticket: " + ticket.Subject,
			Details:   ticket.Message,
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("ticket created", "ticket_id", ticket.ID, "client_id", ticket.ClientID)

	return ticket, nil
}

func missing(first bool, a, b string) string {
	if first {
		return a
	}
	return b
}
