package teammembers

import (
	"context"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

const columns = `id, external_id, name, role, bio, image_url, email`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanTeamMember(s dbx.Scanner) (*models.TeamMember, error) {
	m := &models.TeamMember{}
	if err := s.Scan(&m.ID, &m.ExternalID, &m.Name, &m.Role, &m.Bio, &m.ImageURL, &m.Email); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.TeamMember, bool, error) {
	query := `SELECT ` + columns + ` FROM team_members WHERE id = $1`
	return dbx.QueryOne(ctx, r.db, scanTeamMember, query, id)
}

func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID string) (*models.TeamMember, bool, error) {
	query := `SELECT ` + columns + ` FROM team_members WHERE external_id = $1`
	return dbx.QueryOne(ctx, r.db, scanTeamMember, query, externalID)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.TeamMember, error) {
	query := `SELECT ` + columns + ` FROM team_members ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanTeamMember, query)
}

func (r *PostgresRepository) Create(ctx context.Context, m models.NewTeamMember) (*models.TeamMember, error) {
	query :=
		`INSERT INTO team_members (external_id, name, role, bio, image_url, email)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + columns

	return dbx.InsertOne(ctx, r.db, scanTeamMember, query,
		m.ExternalID, m.Name, m.Role, m.Bio, m.ImageURL, m.Email)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.TeamMemberPatch) (*models.TeamMember, bool, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	var set dbx.Assignments
	dbx.SetNullable(&set, "external_id", patch.ExternalID.Set, patch.ExternalID.Value)
	dbx.SetIf(&set, "name", patch.Name)
	dbx.SetIf(&set, "role", patch.Role)
	dbx.SetIf(&set, "bio", patch.Bio)
	dbx.SetIf(&set, "image_url", patch.ImageURL)
	dbx.SetIf(&set, "email", patch.Email)

	query, args := set.UpdateByID("team_members", columns, id)
	return dbx.QueryOne(ctx, r.db, scanTeamMember, query, args...)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return dbx.DeleteByID(ctx, r.db, `DELETE FROM team_members WHERE id = $1`, id)
}
