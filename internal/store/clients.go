package store

import (
	"context"

	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	return translate(s.conn(ctx).Create(client).Error, "Client not found", "Failed to create client")
}

func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}

	err := s.conn(ctx).Order("created_at DESC").Order("id DESC").Find(&clients).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch clients")
	}

	return clients, nil
}

func (s *Store) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client

	if err := s.conn(ctx).First(&client, id).Error; err != nil {
		return nil, translate(err, "Client not found", "Failed to fetch client")
	}

	return &client, nil
}

// ClientsMissingMonitor returns clients with a website but no registered
// monitor, oldest first.
func (s *Store) ClientsMissingMonitor(ctx context.Context, limit int) ([]models.Client, error) {
	clients := []models.Client{}

	err := s.conn(ctx).
		Where("website <> ? AND (monitor_id IS NULL OR monitor_id = ?)", "", "").
		Order("id ASC").
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch clients")
	}

	return clients, nil
}

// SetClientMonitor records a confirmed monitor registration. It is a single
// idempotent field write.
func (s *Store) SetClientMonitor(ctx context.Context, clientID uint, monitorID string) error {
	res := s.conn(ctx).Model(&models.Client{}).Where("id = ?", clientID).Update("monitor_id", monitorID)
	if res.Error != nil {
		return translate(res.Error, "", "Failed to update client")
	}

	if res.RowsAffected == 0 {
		return apperrors.NotFound("Client not found")
	}

	return nil
}

// DeleteClient removes a client that no project or ticket references and
// returns a Conflict otherwise.
func (s *Store) DeleteClient(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.GetClient(ctx, id); err != nil {
			return err
		}

		var projects, tickets int64
		if err := tx.conn(ctx).Model(&models.Project{}).Where("client_id = ?", id).Count(&projects).Error; err != nil {
			return translate(err, "", "Failed to delete client")
		}
		if err := tx.conn(ctx).Model(&models.Ticket{}).Where("client_id = ?", id).Count(&tickets).Error; err != nil {
			return translate(err, "", "Failed to delete client")
		}

		if projects > 0 || tickets > 0 {
			return apperrors.Conflict("Client still has projects or tickets", nil)
		}

		return tx.deleteByID(ctx, &models.Client{}, id, "Client not found", "Failed to delete client")
	})
}

func (s *Store) deleteByID(ctx context.Context, model interface{}, id uint, notFound, failure string) error {
	res := s.conn(ctx).Delete(model, id)
	if res.Error != nil {
		return translate(res.Error, notFound, failure)
	}

	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, notFound, failure)
	}

	return nil
}
