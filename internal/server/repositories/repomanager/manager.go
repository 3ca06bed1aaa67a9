package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/activitylogs"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/articles"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/carouselquotes"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/imageassets"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/integrationsettings"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/teammembers"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	TeamMembers(db dbx.DBTX) teammembers.Repository
	Articles(db dbx.DBTX) articles.Repository
	CarouselQuotes(db dbx.DBTX) carouselquotes.Repository
	ImageAssets(db dbx.DBTX) imageassets.Repository
	IntegrationSettings(db dbx.DBTX) integrationsettings.Repository
	ActivityLogs(db dbx.DBTX) activitylogs.Repository
}
