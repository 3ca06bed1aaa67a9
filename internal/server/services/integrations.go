package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
)

type settingKey struct {
	Service string `validate:"required,max=64"`
	Key     string `validate:"required,max=128"`
}

// IntegrationService manages key/value settings of third-party integrations
// addressed by (service, key).
type IntegrationService struct {
	storage storage.Storage
	logger  logging.Logger
}

func NewIntegrationService(st storage.Storage, logger logging.Logger) *IntegrationService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &IntegrationService{storage: st, logger: logger.With("module", "integrations")}
}

// Put stores value under (service, key), creating the setting or updating
// it in place. The setting ends up enabled.
func (s *IntegrationService) Put(ctx context.Context, actorID *int64, service, key, value string) (*models.IntegrationSetting, error) {
	if err := validateStruct(settingKey{Service: service, Key: key}); err != nil {
		return nil, err
	}

	var result *models.IntegrationSetting
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Storage) error {
		existing, found, err := tx.GetIntegrationSettingByKey(ctx, service, key)
		if err != nil {
			return fmt.Errorf("error fetching setting: %w", err)
		}

		if found {
			enabled := true
			updated, ok, err := tx.UpdateIntegrationSetting(ctx, existing.ID, models.IntegrationSettingPatch{
				Value:   &value,
				Enabled: &enabled,
			})
			if err != nil {
				return fmt.Errorf("error updating setting: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: setting %s/%s vanished", common.ErrorNotFound, service, key)
			}
			result = updated
		} else {
			created, err := tx.CreateIntegrationSetting(ctx, models.NewIntegrationSetting{
				Service: service,
				Key:     key,
				Value:   value,
				Enabled: true,
			})
			if err != nil {
				return fmt.Errorf("error creating setting: %w", err)
			}
			result = created
		}

		return recordActivity(ctx, tx, actorID, common.ActionSettingChange, "integration", service+"/"+key, "")
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Values returns the enabled settings of service as a key/value map.
func (s *IntegrationService) Values(ctx context.Context, service string) (map[string]string, error) {
	settings, err := s.storage.GetIntegrationSettings(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("error listing settings: %w", err)
	}

	values := make(map[string]string, len(settings))
	for _, st := range settings {
		if st.Enabled {
			values[st.Key] = st.Value
		}
	}
	return values, nil
}

// Disable turns a setting off without deleting it. It reports whether the
// setting exists.
func (s *IntegrationService) Disable(ctx context.Context, actorID *int64, service, key string) (bool, error) {
	existing, found, err := s.storage.GetIntegrationSettingByKey(ctx, service, key)
	if err != nil {
		return false, fmt.Errorf("error fetching setting: %w", err)
	}
	if !found {
		return false, nil
	}

	disabled := false
	_, found, err = s.storage.UpdateIntegrationSetting(ctx, existing.ID, models.IntegrationSettingPatch{Enabled: &disabled})
	if err != nil {
		return false, fmt.Errorf("error updating setting: %w", err)
	}
	if !found {
		return false, nil
	}

	if err := recordActivity(ctx, s.storage, actorID, common.ActionSettingChange, "integration", service+"/"+key, "disabled"); err != nil {
		s.logger.Warn(ctx, "setting change not recorded", "error", err)
	}
	return true, nil
}
