package store

import (
	"context"
	"errors"

	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/models"
)

// CreateProject inserts a project after checking its client exists, so an
// unknown clientId is reported as bad input rather than a conflict.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if _, err := s.GetClient(ctx, project.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Invalid("clientId", "Client not found")
		}
		return err
	}

	return translate(s.conn(ctx).Omit("Client").Create(project).Error, "", "Failed to create project")
}

func (s *Store) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project

	if err := s.conn(ctx).First(&project, id).Error; err != nil {
		return nil, translate(err, "Project not found", "Failed to fetch project")
	}

	return &project, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}

	err := s.conn(ctx).Preload("Client").Order("created_at DESC").Order("id DESC").Find(&projects).Error
	if err != nil {
		return nil, translate(err, "", "Failed to fetch projects")
	}

	return projects, nil
}

func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Project{}, id, "Project not found", "Failed to delete project")
}
