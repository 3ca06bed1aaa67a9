// Package teammembers declares the repository contract for team members and
// its PostgreSQL implementation.
package teammembers

import (
	"context"

	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.TeamMember, bool, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.TeamMember, bool, error)
	List(ctx context.Context) ([]*models.TeamMember, error)
	Create(ctx context.Context, member models.NewTeamMember) (*models.TeamMember, error)
	Update(ctx context.Context, id int64, patch models.TeamMemberPatch) (*models.TeamMember, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
