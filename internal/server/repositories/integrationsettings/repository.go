// Package integrationsettings declares the repository contract for
// third-party integration settings and its PostgreSQL implementation.
package integrationsettings

import (
	"context"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.IntegrationSetting, bool, error)
	// GetByKey looks a setting up by its compound (service, key) identity.
	GetByKey(ctx context.Context, service, key string) (*models.IntegrationSetting, bool, error)
	ListByService(ctx context.Context, service string) ([]*models.IntegrationSetting, error)
	Create(ctx context.Context, setting models.NewIntegrationSetting) (*models.IntegrationSetting, error)
	Update(ctx context.Context, id int64, patch models.IntegrationSettingPatch) (*models.IntegrationSetting, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
