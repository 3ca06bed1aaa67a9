package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/dbx"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/dmitrijs2005/contentdesk/internal/server/repositories/repomanager"
)

// DatabaseStorage implements Storage on top of the PostgreSQL repositories.
// Every facade call is a single statement against the pool; server-assigned
// timestamps are taken from the storage clock at call time.
type DatabaseStorage struct {
	pool     *sql.DB
	db       dbx.DBTX
	repos    repomanager.RepositoryManager
	sessions SessionStore
	now      func() time.Time
	inTx     bool
}

var _ Storage = (*DatabaseStorage)(nil)

// NewDatabaseStorage builds a facade over pool. sessions is the store
// returned by SessionStore.
func NewDatabaseStorage(pool *sql.DB, repos repomanager.RepositoryManager, sessions SessionStore) *DatabaseStorage {
	return &DatabaseStorage{
		pool:     pool,
		db:       pool,
		repos:    repos,
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *DatabaseStorage) SessionStore() SessionStore {
	return s.sessions
}

// RunInTx runs fn inside a database transaction. Nested calls reuse the
// outer transaction.
func (s *DatabaseStorage) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Storage) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return dbx.WithTx(ctx, s.pool, nil, func(ctx context.Context, tx dbx.DBTX) error {
		bound := *s
		bound.db = tx
		bound.inTx = true
		return fn(ctx, &bound)
	})
}

// Users

func (s *DatabaseStorage) GetUser(ctx context.Context, id int64) (*models.User, bool, error) {
	return s.repos.Users(s.db).Get(ctx, id)
}

func (s *DatabaseStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	return s.repos.Users(s.db).GetByUsername(ctx, username)
}

func (s *DatabaseStorage) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repos.Users(s.db).List(ctx)
}

func (s *DatabaseStorage) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	return s.repos.Users(s.db).Create(ctx, user)
}

// UpdateUserLastLogin stamps the user's last login with the current time.
func (s *DatabaseStorage) UpdateUserLastLogin(ctx context.Context, id int64) (*models.User, bool, error) {
	return s.repos.Users(s.db).SetLastLogin(ctx, id, s.now())
}

func (s *DatabaseStorage) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, bool, error) {
	return s.repos.Users(s.db).Update(ctx, id, patch)
}

func (s *DatabaseStorage) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.repos.Users(s.db).Delete(ctx, id)
}

// Team members

func (s *DatabaseStorage) GetTeamMembers(ctx context.Context) ([]*models.TeamMember, error) {
	return s.repos.TeamMembers(s.db).List(ctx)
}

func (s *DatabaseStorage) GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, bool, error) {
	return s.repos.TeamMembers(s.db).Get(ctx, id)
}

func (s *DatabaseStorage) GetTeamMemberByExternalID(ctx context.Context, externalID string) (*models.TeamMember, bool, error) {
	return s.repos.TeamMembers(s.db).GetByExternalID(ctx, externalID)
}

func (s *DatabaseStorage) CreateTeamMember(ctx context.Context, member models.NewTeamMember) (*models.TeamMember, error) {
	return s.repos.TeamMembers(s.db).Create(ctx, member)
}

func (s *DatabaseStorage) UpdateTeamMember(ctx context.Context, id int64, patch models.TeamMemberPatch) (*models.TeamMember, bool, error) {
	return s.repos.TeamMembers(s.db).Update(ctx, id, patch)
}

func (s *DatabaseStorage) DeleteTeamMember(ctx context.Context, id int64) (bool, error) {
	return s.repos.TeamMembers(s.db).Delete(ctx, id)
}

// Articles

func (s *DatabaseStorage) GetArticles(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Articles(s.db).List(ctx)
}

func (s *DatabaseStorage) GetArticle(ctx context.Context, id int64) (*models.Article, bool, error) {
	return s.repos.Articles(s.db).Get(ctx, id)
}

func (s *DatabaseStorage) GetArticleByExternalID(ctx context.Context, externalID string) (*models.Article, bool, error) {
	return s.repos.Articles(s.db).GetByExternalID(ctx, externalID)
}

func (s *DatabaseStorage) CreateArticle(ctx context.Context, article models.NewArticle) (*models.Article, error) {
	return s.repos.Articles(s.db).Create(ctx, article, s.now())
}

func (s *DatabaseStorage) UpdateArticle(ctx context.Context, id int64, patch models.ArticlePatch) (*models.Article, bool, error) {
	return s.repos.Articles(s.db).Update(ctx, id, patch)
}

func (s *DatabaseStorage) DeleteArticle(ctx context.Context, id int64) (bool, error) {
	return s.repos.Articles(s.db).Delete(ctx, id)
}

func (s *DatabaseStorage) GetFeaturedArticles(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Articles(s.db).ListFeatured(ctx)
}

func (s *DatabaseStorage) GetArticlesByStatus(ctx context.Context, status string) ([]*models.Article, error) {
	return s.repos.Articles(s.db).ListByStatus(ctx, status)
}

// Carousel quotes

func (s *DatabaseStorage) GetCarouselQuotes(ctx context.Context) ([]*models.CarouselQuote, error) {
	return s.repos.CarouselQuotes(s.db).List(ctx)
}

func (s *DatabaseStorage) GetCarouselQuote(ctx context.Context, id int64) (*models.CarouselQuote, bool, error) {
	return s.repos.CarouselQuotes(s.db).Get(ctx, id)
}

func (s *DatabaseStorage) CreateCarouselQuote(ctx context.Context, quote models.NewCarouselQuote) (*models.CarouselQuote, error) {
	return s.repos.CarouselQuotes(s.db).Create(ctx, quote)
}

func (s *DatabaseStorage) UpdateCarouselQuote(ctx context.Context, id int64, patch models.CarouselQuotePatch) (*models.CarouselQuote, bool, error) {
	return s.repos.CarouselQuotes(s.db).Update(ctx, id, patch)
}

func (s *DatabaseStorage) DeleteCarouselQuote(ctx context.Context, id int64) (bool, error) {
	return s.repos.CarouselQuotes(s.db).Delete(ctx, id)
}

func (s *DatabaseStorage) GetQuotesByCarousel(ctx context.Context, carousel string) ([]*models.CarouselQuote, error) {
	return s.repos.CarouselQuotes(s.db).ListByCarousel(ctx, carousel)
}

// Image assets

func (s *DatabaseStorage) GetImageAssets(ctx context.Context) ([]*models.ImageAsset, error) {
	return s.repos.ImageAssets(s.db).List(ctx)
}

func (s *DatabaseStorage) GetImageAsset(ctx context.Context, id int64) (*models.ImageAsset, bool, error) {
	return s.repos.ImageAssets(s.db).Get(ctx, id)
}

func (s *DatabaseStorage) CreateImageAsset(ctx context.Context, asset models.NewImageAsset) (*models.ImageAsset, error) {
	return s.repos.ImageAssets(s.db).Create(ctx, asset, s.now())
}

func (s *DatabaseStorage) DeleteImageAsset(ctx context.Context, id int64) (bool, error) {
	return s.repos.ImageAssets(s.db).Delete(ctx, id)
}

// Integration settings

func (s *DatabaseStorage) GetIntegrationSettings(ctx context.Context, service string) ([]*models.IntegrationSetting, error) {
	return s.repos.IntegrationSettings(s.db).ListByService(ctx, service)
}

func (s *DatabaseStorage) GetIntegrationSetting(ctx context.Context, id int64) (*models.IntegrationSetting, bool, error) {
	return s.repos.IntegrationSettings(s.db).Get(ctx, id)
}

func (s *DatabaseStorage) GetIntegrationSettingByKey(ctx context.Context, service, key string) (*models.IntegrationSetting, bool, error) {
	return s.repos.IntegrationSettings(s.db).GetByKey(ctx, service, key)
}

func (s *DatabaseStorage) CreateIntegrationSetting(ctx context.Context, setting models.NewIntegrationSetting) (*models.IntegrationSetting, error) {
	return s.repos.IntegrationSettings(s.db).Create(ctx, setting)
}

func (s *DatabaseStorage) UpdateIntegrationSetting(ctx context.Context, id int64, patch models.IntegrationSettingPatch) (*models.IntegrationSetting, bool, error) {
	return s.repos.IntegrationSettings(s.db).Update(ctx, id, patch)
}

func (s *DatabaseStorage) DeleteIntegrationSetting(ctx context.Context, id int64) (bool, error) {
	return s.repos.IntegrationSettings(s.db).Delete(ctx, id)
}

// Activity logs

func (s *DatabaseStorage) GetActivityLogs(ctx context.Context) ([]*models.ActivityLog, error) {
	return s.repos.ActivityLogs(s.db).List(ctx)
}

func (s *DatabaseStorage) CreateActivityLog(ctx context.Context, entry models.NewActivityLog) (*models.ActivityLog, error) {
	return s.repos.ActivityLogs(s.db).Create(ctx, entry, s.now())
}
