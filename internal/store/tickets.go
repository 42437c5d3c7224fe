package store

import (
	"context"
	"errors"

	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/models"
)

// CreateTicket checks that the client exists and that an optional project
// belongs to that client.
func (s *Store) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if _, err := s.GetClient(ctx, ticket.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Invalid("clientId", "Client not found")
		}
		return err
	}

	if ticket.ProjectID != nil {
		project, err := s.GetProject(ctx, *ticket.ProjectID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Invalid("projectId", "Project not found")
		}
		if err != nil {
			return err
		}
		if project.ClientID != ticket.ClientID {
			return apperrors.Invalid("projectId", "Project belongs to another client")
		}
	}

	return translate(s.conn(ctx).Omit("Client", "Project").Create(ticket).Error, "", "Failed to create ticket")
}

func (s *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets := []models.Ticket{}

	err := s.conn(ctx).Preload("Client").Order("created_at DESC").Order("id DESC").Find(&tickets).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch tickets")
	}

	return tickets, nil
}
