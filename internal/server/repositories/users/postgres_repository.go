package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

const columns = `id, username, password, role, last_login`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(s dbx.Scanner) (*models.User, error) {
	u := &models.User{}
	if err := s.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.LastLogin); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.User, bool, error) {
	query := `SELECT ` + columns + ` FROM users WHERE id = $1`
	return dbx.QueryOne(ctx, r.db, scanUser, query, id)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	query := `SELECT ` + columns + ` FROM users WHERE username = $1`
	return dbx.QueryOne(ctx, r.db, scanUser, query, username)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + columns + ` FROM users ORDER BY id`
	return dbx.QueryAll(ctx, r.db, scanUser, query)
}

func (r *PostgresRepository) Create(ctx context.Context, user models.NewUser) (*models.User, error) {
	role := user.Role
	if role == "" {
		role = common.RoleEditor
	}

	query :=
		`INSERT INTO users (username, password, role)
		 VALUES ($1, $2, $3)
		 RETURNING ` + columns

	return dbx.InsertOne(ctx, r.db, scanUser, query, user.Username, user.Password, role)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, bool, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	var set dbx.Assignments
	dbx.SetIf(&set, "username", patch.Username)
	dbx.SetIf(&set, "password", patch.Password)
	dbx.SetIf(&set, "role", patch.Role)

	query, args := set.UpdateByID("users", columns, id)
	return dbx.QueryOne(ctx, r.db, scanUser, query, args...)
}

func (r *PostgresRepository) SetLastLogin(ctx context.Context, id int64, at time.Time) (*models.User, bool, error) {
	query :=
		`UPDATE users SET last_login = $1
		 WHERE id = $2
		 RETURNING ` + columns

	return dbx.QueryOne(ctx, r.db, scanUser, query, at, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return dbx.DeleteByID(ctx, r.db, `DELETE FROM users WHERE id = $1`, id)
}
