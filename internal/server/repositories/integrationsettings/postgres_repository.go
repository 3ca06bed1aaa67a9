package integrationsettings

import (
	"context"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

const columns = `id, service, key, value, enabled`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanSetting(s dbx.Scanner) (*models.IntegrationSetting, error) {
	st := &models.IntegrationSetting{}
	if err := s.Scan(&st.ID, &st.Service, &st.Key, &st.Value, &st.Enabled); err != nil {
		return nil, err
	}
	return st, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.IntegrationSetting, bool, error) {
	query := `SELECT ` + columns + ` FROM integration_settings WHERE id = $1`
	return dbx.QueryOne(ctx, r.db, scanSetting, query, id)
}

func (r *PostgresRepository) GetByKey(ctx context.Context, service, key string) (*models.IntegrationSetting, bool, error) {
	query := `SELECT ` + columns + ` FROM integration_settings WHERE service = $1 AND key = $2`
	return dbx.QueryOne(ctx, r.db, scanSetting, query, service, key)
}

func (r *PostgresRepository) ListByService(ctx context.Context, service string) ([]*models.IntegrationSetting, error) {
	query := `SELECT ` + columns + ` FROM integration_settings WHERE service = $1 ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanSetting, query, service)
}

func (r *PostgresRepository) Create(ctx context.Context, st models.NewIntegrationSetting) (*models.IntegrationSetting, error) {
	query :=
		`INSERT INTO integration_settings (service, key, value, enabled)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + columns

	return dbx.InsertOne(ctx, r.db, scanSetting, query, st.Service, st.Key, st.Value, st.Enabled)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.IntegrationSettingPatch) (*models.IntegrationSetting, bool, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	var set dbx.Assignments
	dbx.SetIf(&set, "service", patch.Service)
	dbx.SetIf(&set, "key", patch.Key)
	dbx.SetIf(&set, "value", patch.Value)
	dbx.SetIf(&set, "enabled", patch.Enabled)

	query, args := set.UpdateByID("integration_settings", columns, id)
	return dbx.QueryOne(ctx, r.db, scanSetting, query, args...)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return dbx.DeleteByID(ctx, r.db, `DELETE FROM integration_settings WHERE id = $1`, id)
}
