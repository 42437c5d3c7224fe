package store

import (
	"context"

	"github.com/noble-it/hub/internal/models"
)

type Counts struct {
	Clients  int64
	Projects int64
	Tickets  int64
}

func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var counts Counts

	if err := s.conn(ctx).Model(&models.Client{}).Count(&counts.Clients).Error; err != nil {
		return Counts{}, translate(err, "", "Failed to count clients")
	}

	if err := s.conn(ctx).Model(&models.Project{}).Count(&counts.Projects).Error; err != nil {
		return Counts{}, translate(err, "", "Failed to count projects")
	}

	if err := s.conn(ctx).Model(&models.Ticket{}).Count(&counts.Tickets).Error; err != nil {
		return Counts{}, translate(err, "", "Failed to count tickets")
	}

	return counts, nil
}
