package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
)

type memTable[T any] struct {
	seq   int64
	rows  map[int64]T
	clone func(T) T
}

// newMemTable returns an empty table. clone must deep-copy every pointer
// field so that rows handed to callers never alias stored state.
func newMemTable[T any](clone func(T) T) *memTable[T] {
	return &memTable[T]{rows: make(map[int64]T), clone: clone}
}

func (t *memTable[T]) next() int64 {
	t.seq++
	return t.seq
}

func (t *memTable[T]) copyOut(v T) *T {
	v = t.clone(v)
	return &v
}

func (t *memTable[T]) get(id int64) (*T, bool) {
	v, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.copyOut(v), true
}

// put stores a private copy of v under id and returns another copy.
func (t *memTable[T]) put(id int64, v T) *T {
	t.rows[id] = t.clone(v)
	return t.copyOut(v)
}

// find returns the first row, in id order, for which match is true.
func (t *memTable[T]) find(match func(*T) bool) (*T, bool) {
	if rows := t.list(match); len(rows) > 0 {
		return rows[0], true
	}
	return nil, false
}

// list returns copies of matching rows ordered by id. A nil match selects
// every row.
func (t *memTable[T]) list(match func(*T) bool) []*T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	result := make([]*T, 0, len(ids))
	for _, id := range ids {
		v := t.rows[id]
		if match == nil || match(&v) {
			result = append(result, t.copyOut(v))
		}
	}
	return result
}

func (t *memTable[T]) delete(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func sameValue[T any](v T) T { return v }

func cloneUser(u models.User) models.User {
	u.LastLogin = clonePtr(u.LastLogin)
	return u
}

func cloneTeamMember(m models.TeamMember) models.TeamMember {
	m.ExternalID = clonePtr(m.ExternalID)
	return m
}

func cloneArticle(a models.Article) models.Article {
	a.ExternalID = clonePtr(a.ExternalID)
	a.PublishedAt = clonePtr(a.PublishedAt)
	a.ScheduledAt = clonePtr(a.ScheduledAt)
	return a
}

func cloneActivityLog(l models.ActivityLog) models.ActivityLog {
	l.UserID = clonePtr(l.UserID)
	l.ResourceID = clonePtr(l.ResourceID)
	return l
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorConstraintViolation, fmt.Sprintf(format, args...))
}

// MemoryStorage is an in-process Storage with the same uniqueness rules as
// the database schema. Ids start at 1 and are never reused. RunInTx does not
// roll back.
type MemoryStorage struct {
	mu sync.Mutex

	users       *memTable[models.User]
	members     *memTable[models.TeamMember]
	articles    *memTable[models.Article]
	quotes      *memTable[models.CarouselQuote]
	assets      *memTable[models.ImageAsset]
	settings    *memTable[models.IntegrationSetting]
	activityLog *memTable[models.ActivityLog]

	sessions SessionStore
	now      func() time.Time
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty MemoryStorage. sessions may be nil when
// the caller does not need a session store.
func NewMemoryStorage(sessions SessionStore) *MemoryStorage {
	return &MemoryStorage{
		users:       newMemTable(cloneUser),
		members:     newMemTable(cloneTeamMember),
		articles:    newMemTable(cloneArticle),
		quotes:      newMemTable(sameValue[models.CarouselQuote]),
		assets:      newMemTable(sameValue[models.ImageAsset]),
		settings:    newMemTable(sameValue[models.IntegrationSetting]),
		activityLog: newMemTable(cloneActivityLog),
		sessions:    sessions,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStorage) SessionStore() SessionStore {
	return s.sessions
}

func (s *MemoryStorage) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Storage) error) error {
	return fn(ctx, s)
}

// Users

func (s *MemoryStorage) GetUser(_ context.Context, id int64) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users.get(id)
	return u, ok, nil
}

func (s *MemoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users.find(func(u *models.User) bool { return u.Username == username })
	return u, ok, nil
}

func (s *MemoryStorage) GetAllUsers(_ context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.list(nil), nil
}

func (s *MemoryStorage) usernameTaken(username string, except int64) bool {
	_, taken := s.users.find(func(u *models.User) bool {
		return u.ID != except && u.Username == username
	})
	return taken
}

func (s *MemoryStorage) CreateUser(_ context.Context, in models.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(in.Username, 0) {
		return nil, violation("username %q already exists", in.Username)
	}

	role := in.Role
	if role == "" {
		role = common.RoleEditor
	}

	u := models.User{ID: s.users.next(), Username: in.Username, Password: in.Password, Role: role}
	return s.users.put(u.ID, u), nil
}

func (s *MemoryStorage) UpdateUserLastLogin(_ context.Context, id int64) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, false, nil
	}
	now := s.now()
	u.LastLogin = &now
	return s.users.put(id, *u), true, nil
}

func (s *MemoryStorage) UpdateUser(_ context.Context, id int64, patch models.UserPatch) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok || patch.IsEmpty() {
		return u, ok, nil
	}

	if patch.Username != nil {
		if s.usernameTaken(*patch.Username, id) {
			return nil, false, violation("username %q already exists", *patch.Username)
		}
		u.Username = *patch.Username
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}

	return s.users.put(id, *u), true, nil
}

func (s *MemoryStorage) DeleteUser(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.delete(id), nil
}

// Team members

func (s *MemoryStorage) GetTeamMembers(_ context.Context) ([]*models.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.list(nil), nil
}

func (s *MemoryStorage) GetTeamMember(_ context.Context, id int64) (*models.TeamMember, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members.get(id)
	return m, ok, nil
}

func (s *MemoryStorage) GetTeamMemberByExternalID(_ context.Context, externalID string) (*models.TeamMember, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members.find(func(m *models.TeamMember) bool {
		return m.ExternalID != nil && *m.ExternalID == externalID
	})
	return m, ok, nil
}

func (s *MemoryStorage) memberExternalIDTaken(ext *string, except int64) bool {
	if ext == nil {
		return false
	}
	_, taken := s.members.find(func(m *models.TeamMember) bool {
		return m.ID != except && m.ExternalID != nil && *m.ExternalID == *ext
	})
	return taken
}

func (s *MemoryStorage) CreateTeamMember(_ context.Context, in models.NewTeamMember) (*models.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memberExternalIDTaken(in.ExternalID, 0) {
		return nil, violation("team member external id %q already exists", *in.ExternalID)
	}

	m := models.TeamMember{
		ID:         s.members.next(),
		ExternalID: clonePtr(in.ExternalID),
		Name:       in.Name,
		Role:       in.Role,
		Bio:        in.Bio,
		ImageURL:   in.ImageURL,
		Email:      in.Email,
	}
	return s.members.put(m.ID, m), nil
}

func (s *MemoryStorage) UpdateTeamMember(_ context.Context, id int64, patch models.TeamMemberPatch) (*models.TeamMember, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members.get(id)
	if !ok || patch.IsEmpty() {
		return m, ok, nil
	}

	if s.memberExternalIDTaken(patch.ExternalID.Value, id) {
		return nil, false, violation("team member external id %q already exists", *patch.ExternalID.Value)
	}
	patch.ExternalID.Apply(&m.ExternalID)
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Role != nil {
		m.Role = *patch.Role
	}
	if patch.Bio != nil {
		m.Bio = *patch.Bio
	}
	if patch.ImageURL != nil {
		m.ImageURL = *patch.ImageURL
	}
	if patch.Email != nil {
		m.Email = *patch.Email
	}

	return s.members.put(id, *m), true, nil
}

func (s *MemoryStorage) DeleteTeamMember(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.delete(id), nil
}

// Articles

func (s *MemoryStorage) GetArticles(_ context.Context) ([]*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles.list(nil), nil
}

func (s *MemoryStorage) GetArticle(_ context.Context, id int64) (*models.Article, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles.get(id)
	return a, ok, nil
}

func (s *MemoryStorage) GetArticleByExternalID(_ context.Context, externalID string) (*models.Article, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles.find(func(a *models.Article) bool {
		return a.ExternalID != nil && *a.ExternalID == externalID
	})
	return a, ok, nil
}

func (s *MemoryStorage) articleExternalIDTaken(ext *string, except int64) bool {
	if ext == nil {
		return false
	}
	_, taken := s.articles.find(func(a *models.Article) bool {
		return a.ID != except && a.ExternalID != nil && *a.ExternalID == *ext
	})
	return taken
}

func (s *MemoryStorage) CreateArticle(_ context.Context, in models.NewArticle) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.articleExternalIDTaken(in.ExternalID, 0) {
		return nil, violation("article external id %q already exists", *in.ExternalID)
	}

	status := in.Status
	if status == "" {
		status = models.ArticleStatusDraft
	}

	a := models.Article{
		ID:          s.articles.next(),
		ExternalID:  clonePtr(in.ExternalID),
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		ImageURL:    in.ImageURL,
		Author:      in.Author,
		Status:      status,
		Featured:    in.Featured,
		PublishedAt: clonePtr(in.PublishedAt),
		ScheduledAt: clonePtr(in.ScheduledAt),
		CreatedAt:   s.now(),
	}
	return s.articles.put(a.ID, a), nil
}

func (s *MemoryStorage) UpdateArticle(_ context.Context, id int64, patch models.ArticlePatch) (*models.Article, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles.get(id)
	if !ok || patch.IsEmpty() {
		return a, ok, nil
	}

	if s.articleExternalIDTaken(patch.ExternalID.Value, id) {
		return nil, false, violation("article external id %q already exists", *patch.ExternalID.Value)
	}
	patch.ExternalID.Apply(&a.ExternalID)
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Body != nil {
		a.Body = *patch.Body
	}
	if patch.ImageURL != nil {
		a.ImageURL = *patch.ImageURL
	}
	if patch.Author != nil {
		a.Author = *patch.Author
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Featured != nil {
		a.Featured = *patch.Featured
	}
	patch.PublishedAt.Apply(&a.PublishedAt)
	patch.ScheduledAt.Apply(&a.ScheduledAt)

	return s.articles.put(id, *a), true, nil
}

func (s *MemoryStorage) DeleteArticle(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles.delete(id), nil
}

func (s *MemoryStorage) GetFeaturedArticles(_ context.Context) ([]*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles.list(func(a *models.Article) bool { return a.Featured }), nil
}

func (s *MemoryStorage) GetArticlesByStatus(_ context.Context, status string) ([]*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles.list(func(a *models.Article) bool { return a.Status == status }), nil
}

// Carousel quotes

func (s *MemoryStorage) GetCarouselQuotes(_ context.Context) ([]*models.CarouselQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quotes.list(nil), nil
}

func (s *MemoryStorage) GetCarouselQuote(_ context.Context, id int64) (*models.CarouselQuote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes.get(id)
	return q, ok, nil
}

func (s *MemoryStorage) CreateCarouselQuote(_ context.Context, in models.NewCarouselQuote) (*models.CarouselQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := models.CarouselQuote{
		ID:       s.quotes.next(),
		Carousel: in.Carousel,
		Main:     in.Main,
		Quote:    in.Quote,
		Author:   in.Author,
	}
	return s.quotes.put(q.ID, q), nil
}

func (s *MemoryStorage) UpdateCarouselQuote(_ context.Context, id int64, patch models.CarouselQuotePatch) (*models.CarouselQuote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes.get(id)
	if !ok || patch.IsEmpty() {
		return q, ok, nil
	}

	if patch.Carousel != nil {
		q.Carousel = *patch.Carousel
	}
	if patch.Main != nil {
		q.Main = *patch.Main
	}
	if patch.Quote != nil {
		q.Quote = *patch.Quote
	}
	if patch.Author != nil {
		q.Author = *patch.Author
	}

	return s.quotes.put(id, *q), true, nil
}

func (s *MemoryStorage) DeleteCarouselQuote(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quotes.delete(id), nil
}

func (s *MemoryStorage) GetQuotesByCarousel(_ context.Context, carousel string) ([]*models.CarouselQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quotes.list(func(q *models.CarouselQuote) bool { return q.Carousel == carousel }), nil
}

// Image assets

func (s *MemoryStorage) GetImageAssets(_ context.Context) ([]*models.ImageAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets.list(nil), nil
}

func (s *MemoryStorage) GetImageAsset(_ context.Context, id int64) (*models.ImageAsset, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets.get(id)
	return a, ok, nil
}

func (s *MemoryStorage) CreateImageAsset(_ context.Context, in models.NewImageAsset) (*models.ImageAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := in.Source
	if source == "" {
		source = models.ImageSourceURL
	}

	a := models.ImageAsset{
		ID:         s.assets.next(),
		Name:       in.Name,
		URL:        in.URL,
		StorageKey: in.StorageKey,
		MimeType:   in.MimeType,
		Size:       in.Size,
		Source:     source,
		CreatedAt:  s.now(),
	}
	return s.assets.put(a.ID, a), nil
}

func (s *MemoryStorage) DeleteImageAsset(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets.delete(id), nil
}

// Integration settings

func (s *MemoryStorage) GetIntegrationSettings(_ context.Context, service string) ([]*models.IntegrationSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.list(func(st *models.IntegrationSetting) bool { return st.Service == service }), nil
}

func (s *MemoryStorage) GetIntegrationSetting(_ context.Context, id int64) (*models.IntegrationSetting, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settings.get(id)
	return st, ok, nil
}

func (s *MemoryStorage) GetIntegrationSettingByKey(_ context.Context, service, key string) (*models.IntegrationSetting, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settings.find(func(st *models.IntegrationSetting) bool {
		return st.Service == service && st.Key == key
	})
	return st, ok, nil
}

func (s *MemoryStorage) settingKeyTaken(service, key string, except int64) bool {
	_, taken := s.settings.find(func(st *models.IntegrationSetting) bool {
		return st.ID != except && st.Service == service && st.Key == key
	})
	return taken
}

func (s *MemoryStorage) CreateIntegrationSetting(_ context.Context, in models.NewIntegrationSetting) (*models.IntegrationSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settingKeyTaken(in.Service, in.Key, 0) {
		return nil, violation("setting %s/%s already exists", in.Service, in.Key)
	}

	st := models.IntegrationSetting{
		ID:      s.settings.next(),
		Service: in.Service,
		Key:     in.Key,
		Value:   in.Value,
		Enabled: in.Enabled,
	}
	return s.settings.put(st.ID, st), nil
}

func (s *MemoryStorage) UpdateIntegrationSetting(_ context.Context, id int64, patch models.IntegrationSettingPatch) (*models.IntegrationSetting, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.settings.get(id)
	if !ok || patch.IsEmpty() {
		return st, ok, nil
	}

	updated := *st
	if patch.Service != nil {
		updated.Service = *patch.Service
	}
	if patch.Key != nil {
		updated.Key = *patch.Key
	}
	if patch.Value != nil {
		updated.Value = *patch.Value
	}
	if patch.Enabled != nil {
		updated.Enabled = *patch.Enabled
	}

	if s.settingKeyTaken(updated.Service, updated.Key, id) {
		return nil, false, violation("setting %s/%s already exists", updated.Service, updated.Key)
	}

	return s.settings.put(id, updated), true, nil
}

func (s *MemoryStorage) DeleteIntegrationSetting(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.delete(id), nil
}

// Activity logs

func (s *MemoryStorage) GetActivityLogs(_ context.Context) ([]*models.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activityLog.list(nil), nil
}

func (s *MemoryStorage) CreateActivityLog(_ context.Context, in models.NewActivityLog) (*models.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := models.ActivityLog{
		ID:         s.activityLog.next(),
		UserID:     clonePtr(in.UserID),
		Action:     in.Action,
		Resource:   in.Resource,
		ResourceID: clonePtr(in.ResourceID),
		Details:    in.Details,
		Timestamp:  s.now(),
	}
	return s.activityLog.put(l.ID, l), nil
}
